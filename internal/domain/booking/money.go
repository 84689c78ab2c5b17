package booking

import (
	"github.com/shopspring/decimal"

	"wedding-booking/internal/pkg/errs"
)

// MinorUnitScale is the number of decimal places carried by one minor unit.
const MinorUnitScale = 2

var (
	ErrInvalidAmount = errs.New("amount must be positive")
	ErrInvalidMoney  = errs.New("invalid money value")
)

// Money is an amount in integer minor units.
type Money struct {
	minor int64
}

func NewMoney(minor int64) Money {
	return Money{minor: minor}
}

// ParseMoney converts a major-unit decimal string such as "500.00" into minor units.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.Mark(errs.Wrap(err, "parse money"), ErrInvalidMoney)
	}
	return MoneyFromDecimal(d)
}

func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Shift(MinorUnitScale)
	if !shifted.IsInteger() {
		return Money{}, errs.Wrap(ErrInvalidMoney, "more precision than one minor unit: "+d.String())
	}
	if shifted.GreaterThan(decimal.NewFromInt(maxMinor)) || shifted.LessThan(decimal.NewFromInt(-maxMinor)) {
		return Money{}, errs.Wrap(ErrInvalidMoney, "out of range: "+d.String())
	}
	return Money{minor: shifted.IntPart()}, nil
}

// Bounded well below int64 so that sums of a booking's payments cannot overflow.
const maxMinor = int64(1) << 53

func (m Money) Minor() int64 { return m.minor }

func (m Money) IsZero() bool     { return m.minor == 0 }
func (m Money) IsPositive() bool { return m.minor > 0 }

func (m Money) Add(o Money) Money { return Money{minor: m.minor + o.minor} }
func (m Money) Sub(o Money) Money { return Money{minor: m.minor - o.minor} }

// Cmp returns -1, 0 or 1.
func (m Money) Cmp(o Money) int {
	switch {
	case m.minor < o.minor:
		return -1
	case m.minor > o.minor:
		return 1
	default:
		return 0
	}
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.minor, -MinorUnitScale)
}

// String renders major units with a fixed two-digit fraction.
func (m Money) String() string {
	return m.Decimal().StringFixed(MinorUnitScale)
}
