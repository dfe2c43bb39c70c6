package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plrcalc/profitshare/employee"
	"github.com/plrcalc/profitshare/engine"
)

// API request and response models.

// EvaluateRequest carries one candidate record and, optionally, the subset
// of policies to run. With no policy IDs every active policy runs.
type EvaluateRequest struct {
	Candidate map[string]any `json:"candidate"`
	PolicyIDs []string       `json:"policies,omitempty"`
}

// EvaluationResponse is one policy outcome for a candidate.
type EvaluationResponse struct {
	PolicyID   string `json:"policyId"`
	PolicyName string `json:"policyName"`
	Eligible   bool   `json:"eligible"`
	Remainder  string `json:"remainder,omitempty"`
	Error      string `json:"error,omitempty"`
}

// PolicyResponse describes a registered policy.
type PolicyResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rule   string `json:"rule"`
	Active bool   `json:"active"`
}

// EmployeeRequest is the create/update payload for an employee record.
type EmployeeRequest struct {
	Name           string `json:"name"`
	Area           string `json:"area"`
	Cargo          string `json:"cargo"`
	SalarioBruto   string `json:"salarioBruto"`
	DataDeAdmissao string `json:"dataDeAdmissao"`
}

// EmployeeResponse is an employee record in API responses.
type EmployeeResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Area           string    `json:"area"`
	Cargo          string    `json:"cargo"`
	SalarioBruto   string    `json:"salarioBruto"`
	DataDeAdmissao string    `json:"dataDeAdmissao"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EmployeeEligibilityResponse is one employee's outcome in a screening run.
type EmployeeEligibilityResponse struct {
	EmployeeID   string             `json:"employeeId"`
	EmployeeName string             `json:"employeeName"`
	Result       EvaluationResponse `json:"result"`
}

func newEvaluationResponse(r *engine.EvaluationResult) EvaluationResponse {
	resp := EvaluationResponse{
		PolicyID:   r.PolicyID,
		PolicyName: r.PolicyName,
		Eligible:   r.Eligible,
		Remainder:  r.Remainder,
	}
	if r.Error != nil {
		resp.Error = r.Error.Error()
	}
	return resp
}

func newEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		Area:           e.Area,
		Cargo:          e.Cargo,
		SalarioBruto:   e.SalarioBruto.StringFixed(2),
		DataDeAdmissao: e.DataDeAdmissao.Format("2006-01-02"),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// toEmployee converts the request payload, reporting the first malformed
// field. The record still goes through employee.Validate before storage.
func (r EmployeeRequest) toEmployee(id string) (*employee.Employee, error) {
	salary, err := decimal.NewFromString(r.SalarioBruto)
	if err != nil {
		return nil, errMalformed("salarioBruto", r.SalarioBruto)
	}

	admission, err := time.Parse("2006-01-02", r.DataDeAdmissao)
	if err != nil {
		return nil, errMalformed("dataDeAdmissao", r.DataDeAdmissao)
	}

	return &employee.Employee{
		ID:             id,
		Name:           r.Name,
		Area:           r.Area,
		Cargo:          r.Cargo,
		SalarioBruto:   salary,
		DataDeAdmissao: admission,
	}, nil
}
