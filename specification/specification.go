// Package specification implements a composable boolean predicate algebra
// over candidate records. Specifications are assembled once through the
// And/Or/Xor/Not combinators and then evaluated any number of times against
// any number of candidates.
//
// Evaluation is pure: IsSatisfiedBy and RemainderUnsatisfiedBy never mutate
// the tree and are safe for concurrent use. Construction is not: the And/Or
// combinators flatten in place, so a tree must be fully assembled by a single
// owner before being shared.
package specification

// Specification is a boolean predicate over a Candidate.
type Specification interface {
	// IsSatisfiedBy reports whether the candidate satisfies this
	// specification. It returns an error when the candidate violates the
	// data contract (missing or malformed field) or the specification
	// itself is malformed (see ErrInvalidComposition).
	IsSatisfiedBy(candidate Candidate) (bool, error)
}

// remainderer is implemented by specifications that refine the default
// remainder behavior. Only And does; everything else falls through to
// "return the node itself when unsatisfied".
type remainderer interface {
	RemainderUnsatisfiedBy(candidate Candidate) (Specification, error)
}

// RemainderUnsatisfiedBy reports why spec rejected the candidate. It returns
// nil when the candidate satisfies spec. For an And specification it returns
// just the failing clauses (see AndSpecification.RemainderUnsatisfiedBy);
// for every other variant it returns spec itself.
func RemainderUnsatisfiedBy(spec Specification, candidate Candidate) (Specification, error) {
	if r, ok := spec.(remainderer); ok {
		return r.RemainderUnsatisfiedBy(candidate)
	}
	satisfied, err := spec.IsSatisfiedBy(candidate)
	if err != nil {
		return nil, err
	}
	if satisfied {
		return nil, nil
	}
	return spec, nil
}
