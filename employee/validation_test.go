package employee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	if err := Validate(testEmployee("emp-1")); err != nil {
		t.Errorf("Validate() failed on a complete record: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Employee)
	}{
		{"empty name", func(e *Employee) { e.Name = "" }},
		{"whitespace name", func(e *Employee) { e.Name = "   " }},
		{"empty area", func(e *Employee) { e.Area = "" }},
		{"empty cargo", func(e *Employee) { e.Cargo = "" }},
		{"negative salary", func(e *Employee) { e.SalarioBruto = decimal.RequireFromString("-1.00") }},
		{"zero admission date", func(e *Employee) { e.DataDeAdmissao = time.Time{} }},
		{"future admission date", func(e *Employee) { e.DataDeAdmissao = time.Now().AddDate(1, 0, 0) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := testEmployee("emp-1")
			tc.mutate(e)
			if err := Validate(e); err == nil {
				t.Error("Validate() should reject the record")
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}
