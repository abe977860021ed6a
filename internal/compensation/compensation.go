package compensation

import (
	"github.com/shopspring/decimal"
)

// Type is the closed set of compensation schemes an employee can be on.
type Type string

const (
	TypeHourly     Type = "HOURLY"
	TypeProduction Type = "PRODUCTION"
	TypeFixed      Type = "FIXED"
)

// MaxHours is the upper bound for hours in one pay period. Hours above it
// are treated as not entered, never clamped.
const MaxHours = 80

// Profile carries the rate(s) relevant to an employee's compensation type.
type Profile struct {
	Type       Type
	HourlyRate decimal.Decimal
	PieceRate  decimal.Decimal
	FixedPay   decimal.Decimal
}

// Input is what a location actor typed for one employee. Only the measure
// group matching the profile type is consulted.
type Input struct {
	Hours      decimal.Decimal
	Units      decimal.Decimal
	Count      int64
	Adjustment decimal.Decimal
}

// Result is the computed amount plus the inclusion flag used at submit time.
type Result struct {
	Amount  decimal.Decimal
	HasData bool
}

// Calculate computes the pay amount for one entry. Pure and allocation-light;
// the UI layer calls it on every keystroke. Rows whose measures fall outside
// the valid range come back with HasData false and a zero amount, and are
// excluded from the submission rather than clamped or errored.
func Calculate(p Profile, in Input) Result {
	switch p.Type {
	case TypeHourly:
		if in.Hours.Sign() <= 0 || in.Hours.GreaterThan(decimal.NewFromInt(MaxHours)) {
			return Result{Amount: decimal.Zero}
		}
		return Result{
			Amount:  in.Hours.Mul(p.HourlyRate).Round(2),
			HasData: true,
		}

	case TypeProduction:
		if in.Units.Sign() <= 0 {
			return Result{Amount: decimal.Zero}
		}
		return Result{
			Amount:  in.Units.Mul(p.PieceRate).Round(2),
			HasData: true,
		}

	case TypeFixed:
		count := in.Count
		if count == 0 {
			count = 1
		}
		if count < 0 {
			return Result{Amount: decimal.Zero}
		}
		amount := decimal.NewFromInt(count).Mul(p.FixedPay).Add(in.Adjustment)
		return Result{
			Amount:  amount.Round(2),
			HasData: true,
		}

	default:
		return Result{Amount: decimal.Zero}
	}
}
