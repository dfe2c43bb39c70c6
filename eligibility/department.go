// Package eligibility provides the atomic profit-sharing rules: department
// and role matching, salary-ratio thresholds and admission-time thresholds.
// Each constructor returns a specification.Specification, so rules compose
// freely through the specification combinators.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/plrcalc/profitshare/specification"
)

// Department names recognized by the ready-made constructors. The values
// match the HR export, which records departments in Portuguese.
const (
	DepartmentDirectorBoard      = "diretoria"
	DepartmentAccounting         = "contabilidade"
	DepartmentFinancial          = "financeiro"
	DepartmentIT                 = "tecnologia"
	DepartmentFacilities         = "serviços gerais"
	DepartmentCustomerExperience = "relacionamento com o cliente"
)

type departmentSpecification struct {
	name string
}

func (s departmentSpecification) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	area, err := candidate.Text(specification.FieldArea)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(area, s.name), nil
}

func (s departmentSpecification) String() string {
	return fmt.Sprintf("Department(%s)", s.name)
}

// Department matches candidates whose area equals name, ignoring case.
func Department(name string) specification.Specification {
	return departmentSpecification{name: name}
}

func DirectorBoard() specification.Specification { return Department(DepartmentDirectorBoard) }

func AccountingDepartment() specification.Specification { return Department(DepartmentAccounting) }

func FinancialDepartment() specification.Specification { return Department(DepartmentFinancial) }

func ITDepartment() specification.Specification { return Department(DepartmentIT) }

func FacilitiesDepartment() specification.Specification { return Department(DepartmentFacilities) }

func CustomerExperienceDepartment() specification.Specification {
	return Department(DepartmentCustomerExperience)
}
