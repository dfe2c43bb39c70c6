package specification

import (
	"fmt"
	"strings"
)

// AndSpecification is satisfied when every child is satisfied. Child order
// is the order of combination, left before right.
type AndSpecification struct {
	children []Specification
}

// NewAnd builds an And node directly from a child list. Prefer the And
// combinator, which flattens adjacent And nodes.
func NewAnd(children ...Specification) *AndSpecification {
	return &AndSpecification{children: children}
}

// Children returns the child list. The returned slice is the node's own
// backing array; callers must treat it as read-only.
func (s *AndSpecification) Children() []Specification {
	return s.children
}

func (s *AndSpecification) IsSatisfiedBy(candidate Candidate) (bool, error) {
	if len(s.children) == 0 {
		return false, fmt.Errorf("and with no children: %w", ErrInvalidComposition)
	}
	for _, child := range s.children {
		satisfied, err := child.IsSatisfiedBy(candidate)
		if err != nil {
			return false, err
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

// RemainderUnsatisfiedBy narrows the failure down to the clauses that
// actually rejected the candidate: nil when all are satisfied, the single
// failing child when there is exactly one, the node itself when every child
// failed, and otherwise a fresh And holding just the failing subset.
func (s *AndSpecification) RemainderUnsatisfiedBy(candidate Candidate) (Specification, error) {
	if len(s.children) == 0 {
		return nil, fmt.Errorf("and with no children: %w", ErrInvalidComposition)
	}

	var unsatisfied []Specification
	for _, child := range s.children {
		satisfied, err := child.IsSatisfiedBy(candidate)
		if err != nil {
			return nil, err
		}
		if !satisfied {
			unsatisfied = append(unsatisfied, child)
		}
	}

	switch {
	case len(unsatisfied) == 0:
		return nil, nil
	case len(unsatisfied) == 1:
		return unsatisfied[0], nil
	case len(unsatisfied) == len(s.children):
		return s, nil
	default:
		return NewAnd(unsatisfied...), nil
	}
}

func (s *AndSpecification) String() string {
	return joinChildren(s.children, " AND ")
}

// OrSpecification is satisfied when any child is satisfied.
type OrSpecification struct {
	children []Specification
}

// NewOr builds an Or node directly from a child list. Prefer the Or
// combinator, which flattens adjacent Or nodes.
func NewOr(children ...Specification) *OrSpecification {
	return &OrSpecification{children: children}
}

// Children returns the child list. The returned slice is the node's own
// backing array; callers must treat it as read-only.
func (s *OrSpecification) Children() []Specification {
	return s.children
}

func (s *OrSpecification) IsSatisfiedBy(candidate Candidate) (bool, error) {
	if len(s.children) == 0 {
		return false, fmt.Errorf("or with no children: %w", ErrInvalidComposition)
	}
	for _, child := range s.children {
		satisfied, err := child.IsSatisfiedBy(candidate)
		if err != nil {
			return false, err
		}
		if satisfied {
			return true, nil
		}
	}
	return false, nil
}

func (s *OrSpecification) String() string {
	return joinChildren(s.children, " OR ")
}

// XorSpecification is satisfied when exactly one of its two operands is.
type XorSpecification struct {
	left  Specification
	right Specification
}

func NewXor(left, right Specification) *XorSpecification {
	return &XorSpecification{left: left, right: right}
}

func (s *XorSpecification) IsSatisfiedBy(candidate Candidate) (bool, error) {
	left, err := s.left.IsSatisfiedBy(candidate)
	if err != nil {
		return false, err
	}
	right, err := s.right.IsSatisfiedBy(candidate)
	if err != nil {
		return false, err
	}
	return left != right, nil
}

func (s *XorSpecification) String() string {
	return fmt.Sprintf("(%v XOR %v)", s.left, s.right)
}

// NotSpecification inverts its inner specification.
type NotSpecification struct {
	inner Specification
}

func NewNot(inner Specification) *NotSpecification {
	return &NotSpecification{inner: inner}
}

func (s *NotSpecification) IsSatisfiedBy(candidate Candidate) (bool, error) {
	satisfied, err := s.inner.IsSatisfiedBy(candidate)
	if err != nil {
		return false, err
	}
	return !satisfied, nil
}

func (s *NotSpecification) String() string {
	return fmt.Sprintf("NOT %v", s.inner)
}

// TrueSpecification is satisfied by every candidate. Useful as an algebra
// identity and as a no-op placeholder.
type TrueSpecification struct{}

func (TrueSpecification) IsSatisfiedBy(Candidate) (bool, error) { return true, nil }

func (TrueSpecification) String() string { return "TRUE" }

// FalseSpecification is satisfied by no candidate.
type FalseSpecification struct{}

func (FalseSpecification) IsSatisfiedBy(Candidate) (bool, error) { return false, nil }

func (FalseSpecification) String() string { return "FALSE" }

// And combines two specifications conjunctively. When the left operand is
// already an And node the combination flattens: the right operand (or its
// child list, when it is an And too) is appended to the left node in place
// and the left node is returned. Any other pairing allocates a fresh node.
//
// Because of the in-place flattening, combination is a construction-time
// operation only: assemble the full tree in a single goroutine before
// sharing it for concurrent evaluation, and do not reuse an And node in two
// expressions.
func And(left, right Specification) Specification {
	if and, ok := left.(*AndSpecification); ok {
		if other, ok := right.(*AndSpecification); ok {
			and.children = append(and.children, other.children...)
		} else {
			and.children = append(and.children, right)
		}
		return and
	}
	return NewAnd(left, right)
}

// Or combines two specifications disjunctively, flattening into the left
// operand when it is already an Or node. The construction-time contract
// documented on And applies equally here.
func Or(left, right Specification) Specification {
	if or, ok := left.(*OrSpecification); ok {
		if other, ok := right.(*OrSpecification); ok {
			or.children = append(or.children, other.children...)
		} else {
			or.children = append(or.children, right)
		}
		return or
	}
	return NewOr(left, right)
}

// Xor combines two specifications exclusively. Always allocates.
func Xor(left, right Specification) Specification {
	return NewXor(left, right)
}

// Not inverts a specification. Always allocates.
func Not(inner Specification) Specification {
	return NewNot(inner)
}

func joinChildren(children []Specification, sep string) string {
	parts := make([]string, len(children))
	for i, child := range children {
		parts[i] = fmt.Sprintf("%v", child)
	}
	return "(" + strings.Join(parts, sep) + ")"
}
