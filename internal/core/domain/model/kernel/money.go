package kernel

import (
	"fmt"

	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money is an immutable monetary amount in minor currency units (kopecks).
// Storing integer minor units avoids the rounding problems of float
// arithmetic on prices. Negative amounts are rejected at construction.
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor units.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", minorUnits))
	}
	return Money{amount: minorUnits, guard: guard.NewConstructorGuard()}, nil
}

// Validate checks that the value was created through NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// MinorUnits returns the raw amount in minor units.
func (m Money) MinorUnits() int64 {
	return m.amount
}

// Float64 returns the amount in major units, for presentation only.
func (m Money) Float64() float64 {
	return float64(m.amount) / 100
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two amounts. Both values must be properly constructed.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount + other.amount)
}

// SubFloored returns m minus other, floored at zero. Used for discount
// arithmetic where the final price may never go negative.
func (m Money) SubFloored(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	result := m.amount - other.amount
	if result < 0 {
		result = 0
	}
	return NewMoney(result)
}

// String formats the amount in major units with two decimals, e.g. "125.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}
