package engine

import (
	"time"

	"github.com/plrcalc/profitshare/specification"
)

// Policy is a named, registered eligibility rule. The Spec tree must be
// fully assembled before the policy is registered; registered trees are
// evaluated concurrently and never mutated.
type Policy struct {
	ID        string
	Name      string
	Spec      specification.Specification
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EvaluationResult is the outcome of evaluating one policy against one
// candidate. When the candidate is not eligible, Remainder describes the
// clause(s) that rejected it. Error is set when the candidate's data
// violates the field contract; Eligible is false in that case.
type EvaluationResult struct {
	PolicyID   string
	PolicyName string
	Eligible   bool
	Remainder  string
	Error      error
}

// EmployeeEligibility pairs a stored employee with the evaluation outcome
// from a screening run.
type EmployeeEligibility struct {
	EmployeeID   string
	EmployeeName string
	Result       *EvaluationResult
}
