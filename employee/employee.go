// Package employee holds the employee record, its validation, and the
// storage backends the eligibility engine screens records from.
package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plrcalc/profitshare/specification"
)

// Employee is one employee record as loaded from HR data.
type Employee struct {
	ID             string
	Name           string
	Area           string
	Cargo          string
	SalarioBruto   decimal.Decimal
	DataDeAdmissao time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Candidate exposes the record's rule-relevant fields through the
// specification boundary contract.
func (e *Employee) Candidate() specification.Candidate {
	return specification.FieldMap{
		specification.FieldArea:           e.Area,
		specification.FieldCargo:          e.Cargo,
		specification.FieldSalarioBruto:   e.SalarioBruto,
		specification.FieldDataDeAdmissao: e.DataDeAdmissao,
	}
}

// clone returns a copy so store internals never alias caller-held records.
func (e *Employee) clone() *Employee {
	c := *e
	return &c
}
