package eligibility

import (
	"fmt"
	"time"

	"github.com/plrcalc/profitshare/specification"
)

// daysPerYear converts the year thresholds of the between predicate to day
// counts. Leap days are deliberately ignored; see AdmissionTimeInYearsBetween.
const daysPerYear = 365

// TenureOption adjusts how an admission-time predicate is constructed.
type TenureOption func(*time.Time)

// WithReferenceTime freezes the predicate's reference time to t instead of
// the construction-time clock. Evaluations are always measured against the
// frozen time, never against the clock at evaluation time, which keeps
// repeated evaluations of one tree reproducible.
func WithReferenceTime(t time.Time) TenureOption {
	return func(ref *time.Time) {
		*ref = t
	}
}

func referenceTime(opts []TenureOption) time.Time {
	ref := time.Now()
	for _, opt := range opts {
		opt(&ref)
	}
	return ref
}

type admissionYearsLessThan struct {
	threshold int
	frozen    time.Time
}

func (s admissionYearsLessThan) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	admission, err := candidate.Date(specification.FieldDataDeAdmissao)
	if err != nil {
		return false, err
	}
	return wholeYearsBetween(admission, s.frozen) < s.threshold, nil
}

func (s admissionYearsLessThan) String() string {
	return fmt.Sprintf("AdmissionTimeInYearsLessThan(threshold=%d, reference=%s)",
		s.threshold, s.frozen.Format(specification.DateLayout))
}

// AdmissionTimeInYearsLessThan is satisfied when the whole-year difference
// between the admission date and the frozen reference time is strictly less
// than threshold.
func AdmissionTimeInYearsLessThan(threshold int, opts ...TenureOption) specification.Specification {
	return admissionYearsLessThan{threshold: threshold, frozen: referenceTime(opts)}
}

type admissionYearsGreaterThan struct {
	threshold int
	frozen    time.Time
}

func (s admissionYearsGreaterThan) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	admission, err := candidate.Date(specification.FieldDataDeAdmissao)
	if err != nil {
		return false, err
	}
	return wholeYearsBetween(admission, s.frozen) >= s.threshold, nil
}

func (s admissionYearsGreaterThan) String() string {
	return fmt.Sprintf("AdmissionTimeInYearsGreaterThan(threshold=%d, reference=%s)",
		s.threshold, s.frozen.Format(specification.DateLayout))
}

// AdmissionTimeInYearsGreaterThan is satisfied when the whole-year
// difference between the admission date and the frozen reference time is
// greater than or equal to threshold. The comparison is inclusive despite
// the name, which is kept for continuity with the payroll rule catalog.
func AdmissionTimeInYearsGreaterThan(threshold int, opts ...TenureOption) specification.Specification {
	return admissionYearsGreaterThan{threshold: threshold, frozen: referenceTime(opts)}
}

type admissionYearsBetween struct {
	initialDays int
	finalDays   int
	frozen      time.Time
}

func (s admissionYearsBetween) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	admission, err := candidate.Date(specification.FieldDataDeAdmissao)
	if err != nil {
		return false, err
	}
	days := wholeDaysBetween(admission, s.frozen)
	return s.initialDays < days && days < s.finalDays, nil
}

func (s admissionYearsBetween) String() string {
	return fmt.Sprintf("AdmissionTimeInYearsBetween(initial=%d, final=%d, reference=%s)",
		s.initialDays, s.finalDays, s.frozen.Format(specification.DateLayout))
}

// AdmissionTimeInYearsBetween is satisfied when the whole-day difference
// between the admission date and the frozen reference time lies strictly
// between initial×365 and final×365 days.
//
// Unlike the other two admission predicates, which compare whole calendar
// years, this one compares day counts against 365-day-year thresholds, so
// leap years shift its boundaries slightly. The payroll team has always run
// it this way; the behavior is pinned by tests so a future normalization is
// a deliberate, visible change.
func AdmissionTimeInYearsBetween(initial, final int, opts ...TenureOption) specification.Specification {
	return admissionYearsBetween{
		initialDays: initial * daysPerYear,
		finalDays:   final * daysPerYear,
		frozen:      referenceTime(opts),
	}
}

// wholeYearsBetween returns the number of complete calendar years between
// two instants, irrespective of their order.
func wholeYearsBetween(a, b time.Time) int {
	if b.Before(a) {
		a, b = b, a
	}
	years := b.Year() - a.Year()
	if a.AddDate(years, 0, 0).After(b) {
		years--
	}
	return years
}

// wholeDaysBetween returns the number of complete 24-hour days between two
// instants, irrespective of their order.
func wholeDaysBetween(a, b time.Time) int {
	if b.Before(a) {
		a, b = b, a
	}
	return int(b.Sub(a) / (24 * time.Hour))
}
