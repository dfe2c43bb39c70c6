package employee

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks an employee record before it enters a store. Returns an
// error describing the first violation, nil when the record is valid.
func Validate(e *Employee) error {
	if e == nil {
		return fmt.Errorf("employee cannot be nil")
	}

	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("employee name cannot be empty")
	}

	if strings.TrimSpace(e.Area) == "" {
		return fmt.Errorf("employee %q: area cannot be empty", e.Name)
	}

	if strings.TrimSpace(e.Cargo) == "" {
		return fmt.Errorf("employee %q: cargo cannot be empty", e.Name)
	}

	if e.SalarioBruto.IsNegative() {
		return fmt.Errorf("employee %q: salario_bruto cannot be negative, got %s", e.Name, e.SalarioBruto)
	}

	if e.DataDeAdmissao.IsZero() {
		return fmt.Errorf("employee %q: data_de_admissao is required", e.Name)
	}

	if e.DataDeAdmissao.After(time.Now()) {
		return fmt.Errorf("employee %q: data_de_admissao %s is in the future",
			e.Name, e.DataDeAdmissao.Format("2006-01-02"))
	}

	return nil
}
