package eligibility

import (
	"testing"
	"time"

	"github.com/plrcalc/profitshare/specification"
)

func refTime(t *testing.T, value string) TenureOption {
	t.Helper()
	ref, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad reference time %q: %v", value, err)
	}
	return WithReferenceTime(ref)
}

func admittedOn(date string) specification.FieldMap {
	return specification.FieldMap{specification.FieldDataDeAdmissao: date}
}

func TestWholeYearsBetween(t *testing.T) {
	testCases := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"five full years", "2019-01-01", "2024-01-01", 5},
		{"one day short of a year", "2019-01-02", "2020-01-01", 0},
		{"anniversary counts", "2019-01-01", "2020-01-01", 1},
		{"same day", "2019-01-01", "2019-01-01", 0},
		{"reversed arguments", "2024-01-01", "2019-01-01", 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			from, _ := time.Parse("2006-01-02", tc.from)
			to, _ := time.Parse("2006-01-02", tc.to)
			if got := wholeYearsBetween(from, to); got != tc.want {
				t.Errorf("wholeYearsBetween(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestAdmissionTimeInYearsLessThan(t *testing.T) {
	ref := refTime(t, "2024-01-01")

	testCases := []struct {
		name      string
		admission string
		threshold int
		want      bool
	}{
		{"well under", "2023-06-01", 2, true},
		{"well over", "2019-01-01", 2, false},
		{"exact threshold is strict", "2019-01-01", 5, false},
		{"one above threshold", "2019-01-01", 6, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := AdmissionTimeInYearsLessThan(tc.threshold, ref)
			got, err := spec.IsSatisfiedBy(admittedOn(tc.admission))
			if err != nil {
				t.Fatalf("IsSatisfiedBy() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("LessThan(%d) on %s = %v, want %v", tc.threshold, tc.admission, got, tc.want)
			}
		})
	}
}

func TestAdmissionTimeInYearsGreaterThan(t *testing.T) {
	ref := refTime(t, "2024-01-01")

	testCases := []struct {
		name      string
		admission string
		threshold int
		want      bool
	}{
		{"well over", "2019-01-01", 3, true},
		{"under", "2023-06-01", 3, false},
		{"exact threshold is inclusive", "2019-01-01", 5, true},
		{"one above threshold", "2019-01-01", 6, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := AdmissionTimeInYearsGreaterThan(tc.threshold, ref)
			got, err := spec.IsSatisfiedBy(admittedOn(tc.admission))
			if err != nil {
				t.Fatalf("IsSatisfiedBy() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("GreaterThan(%d) on %s = %v, want %v", tc.threshold, tc.admission, got, tc.want)
			}
		})
	}
}

// The between predicate counts days against 365-day-year thresholds instead
// of comparing whole calendar years like its siblings. These cases pin that
// behavior, leap-year drift included: normalizing the units is a deliberate,
// visible change, not a drive-by fix.
func TestAdmissionTimeInYearsBetweenUses365DayYears(t *testing.T) {
	testCases := []struct {
		name      string
		admission string
		reference string
		initial   int
		final     int
		want      bool
	}{
		// 2021-01-01 → 2022-01-01 is exactly 365 days: the lower bound is
		// strict, so one plain calendar year does NOT satisfy between(1, 2).
		{"plain year at lower bound", "2021-01-01", "2022-01-01", 1, 2, false},
		// 2020 was a leap year: 2020-01-01 → 2021-01-01 is 366 days, which
		// DOES satisfy between(1, 2) even though both spans are one year.
		{"leap year crosses lower bound", "2020-01-01", "2021-01-01", 1, 2, true},
		{"inside the window", "2021-07-01", "2023-01-01", 1, 2, true},
		{"at upper bound", "2020-01-02", "2022-01-01", 1, 2, false}, // exactly 730 days
		{"above upper bound", "2019-01-01", "2022-01-01", 1, 2, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := AdmissionTimeInYearsBetween(tc.initial, tc.final, refTime(t, tc.reference))
			got, err := spec.IsSatisfiedBy(admittedOn(tc.admission))
			if err != nil {
				t.Fatalf("IsSatisfiedBy() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Between(%d, %d) %s → %s = %v, want %v",
					tc.initial, tc.final, tc.admission, tc.reference, got, tc.want)
			}
		})
	}
}

func TestFrozenReferenceTimeIsDeterministic(t *testing.T) {
	spec := AdmissionTimeInYearsGreaterThan(3, refTime(t, "2024-01-01"))
	candidate := admittedOn("2019-01-01")

	first, err := spec.IsSatisfiedBy(candidate)
	if err != nil {
		t.Fatalf("IsSatisfiedBy() failed: %v", err)
	}

	// Wall-clock time elapsing between evaluations must not matter.
	time.Sleep(10 * time.Millisecond)

	second, err := spec.IsSatisfiedBy(candidate)
	if err != nil {
		t.Fatalf("IsSatisfiedBy() failed: %v", err)
	}

	if first != second {
		t.Errorf("repeated evaluations disagree: %v then %v", first, second)
	}
	if !first {
		t.Error("2019 admission against frozen 2024 reference should satisfy GreaterThan(3)")
	}
}

func TestDefaultReferenceTimeIsConstructionTime(t *testing.T) {
	before := time.Now()
	spec := AdmissionTimeInYearsLessThan(1).(admissionYearsLessThan)
	after := time.Now()

	if spec.frozen.Before(before) || spec.frozen.After(after) {
		t.Errorf("frozen reference %v not captured at construction (window %v – %v)",
			spec.frozen, before, after)
	}
}
