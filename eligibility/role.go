package eligibility

import (
	"fmt"
	"strings"

	"github.com/plrcalc/profitshare/specification"
)

// RoleTrainee is the role name the HR export uses for trainees.
const RoleTrainee = "estagiario"

type roleSpecification struct {
	name string
}

func (s roleSpecification) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	cargo, err := candidate.Text(specification.FieldCargo)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(cargo, s.name), nil
}

func (s roleSpecification) String() string {
	return fmt.Sprintf("Role(%s)", s.name)
}

// Role matches candidates whose cargo equals name, ignoring case.
func Role(name string) specification.Specification {
	return roleSpecification{name: name}
}

// Trainee matches candidates holding the trainee role.
func Trainee() specification.Specification { return Role(RoleTrainee) }
