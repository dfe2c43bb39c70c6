package eligibility

import "github.com/plrcalc/profitshare/specification"

// Ready-made profit-sharing rules composed from the leaf predicates. Each
// takes the tenure options so tests and batch runs can freeze the reference
// time.

// StandardEligibility is the baseline distribution rule: staff with at
// least one full year of service who are not trainees, or any member of the
// director board.
func StandardEligibility(opts ...TenureOption) specification.Specification {
	return specification.Or(
		specification.And(
			specification.Not(Trainee()),
			AdmissionTimeInYearsGreaterThan(1, opts...),
		),
		DirectorBoard(),
	)
}

// SeniorTechnology selects the senior technology band: technology
// department, salary above four base salaries, three or more years of
// service.
func SeniorTechnology(opts ...TenureOption) specification.Specification {
	spec := specification.And(ITDepartment(), SalaryGreaterThan(4))
	return specification.And(spec, AdmissionTimeInYearsGreaterThan(3, opts...))
}

// EntryLevel selects recent hires in the lower salary band, trainees
// included: under two years of service and salary at most three base
// salaries.
func EntryLevel(opts ...TenureOption) specification.Specification {
	return specification.And(
		AdmissionTimeInYearsLessThan(2, opts...),
		SalaryBetween(0, 3),
	)
}
