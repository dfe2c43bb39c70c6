package eligibility

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/plrcalc/profitshare/specification"
)

// DefaultBaseSalary is the reference amount a candidate's gross salary is
// divided by when no override is supplied. It matches the 2020 Brazilian
// minimum wage the payroll rules were written against.
var DefaultBaseSalary = decimal.RequireFromString("1045.00")

// SalaryNormalizer converts a raw gross salary into a ratio against a base
// amount. It is a value type composed into each salary predicate.
type SalaryNormalizer struct {
	base decimal.Decimal
}

// NewSalaryNormalizer returns a normalizer dividing by base.
func NewSalaryNormalizer(base decimal.Decimal) SalaryNormalizer {
	return SalaryNormalizer{base: base}
}

// Normalize returns raw divided by the base amount.
func (n SalaryNormalizer) Normalize(raw decimal.Decimal) decimal.Decimal {
	return raw.Div(n.base)
}

func (n SalaryNormalizer) ratioFor(candidate specification.Candidate) (decimal.Decimal, error) {
	raw, err := candidate.Decimal(specification.FieldSalarioBruto)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return n.Normalize(raw), nil
}

// SalaryOption adjusts how a salary predicate normalizes gross salaries.
type SalaryOption func(*SalaryNormalizer)

// WithBaseSalary overrides the base amount for one predicate.
func WithBaseSalary(base decimal.Decimal) SalaryOption {
	return func(n *SalaryNormalizer) {
		n.base = base
	}
}

func newNormalizer(opts []SalaryOption) SalaryNormalizer {
	n := NewSalaryNormalizer(DefaultBaseSalary)
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

type salaryGreaterThan struct {
	normalizer SalaryNormalizer
	threshold  decimal.Decimal
}

func (s salaryGreaterThan) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	ratio, err := s.normalizer.ratioFor(candidate)
	if err != nil {
		return false, err
	}
	return ratio.GreaterThan(s.threshold), nil
}

func (s salaryGreaterThan) String() string {
	return fmt.Sprintf("SalaryGreaterThan(threshold=%s)", s.threshold)
}

// SalaryGreaterThan is satisfied when salário bruto ÷ base salary is
// strictly greater than threshold.
func SalaryGreaterThan(threshold int64, opts ...SalaryOption) specification.Specification {
	return salaryGreaterThan{
		normalizer: newNormalizer(opts),
		threshold:  decimal.NewFromInt(threshold),
	}
}

type salaryLessThan struct {
	normalizer SalaryNormalizer
	threshold  decimal.Decimal
}

func (s salaryLessThan) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	ratio, err := s.normalizer.ratioFor(candidate)
	if err != nil {
		return false, err
	}
	return ratio.LessThan(s.threshold), nil
}

func (s salaryLessThan) String() string {
	return fmt.Sprintf("SalaryLessThan(threshold=%s)", s.threshold)
}

// SalaryLessThan is satisfied when salário bruto ÷ base salary is strictly
// less than threshold.
func SalaryLessThan(threshold int64, opts ...SalaryOption) specification.Specification {
	return salaryLessThan{
		normalizer: newNormalizer(opts),
		threshold:  decimal.NewFromInt(threshold),
	}
}

type salaryBetween struct {
	normalizer SalaryNormalizer
	first      decimal.Decimal
	second     decimal.Decimal
}

func (s salaryBetween) IsSatisfiedBy(candidate specification.Candidate) (bool, error) {
	ratio, err := s.normalizer.ratioFor(candidate)
	if err != nil {
		return false, err
	}
	return ratio.GreaterThanOrEqual(s.first) && ratio.LessThanOrEqual(s.second), nil
}

func (s salaryBetween) String() string {
	return fmt.Sprintf("SalaryBetween(first=%s, second=%s)", s.first, s.second)
}

// SalaryBetween is satisfied when salário bruto ÷ base salary falls within
// [first, second], both endpoints inclusive.
func SalaryBetween(first, second int64, opts ...SalaryOption) specification.Specification {
	return salaryBetween{
		normalizer: newNormalizer(opts),
		first:      decimal.NewFromInt(first),
		second:     decimal.NewFromInt(second),
	}
}
