package domain

// MaxNoiceAmount is the upper bound for any single noice amount and
// for a user's spendable balance.
const MaxNoiceAmount = 999999

// NoiceAmount is a weighted like count: an integer in [0, MaxNoiceAmount].
type NoiceAmount struct {
	value int
}

// NewNoiceAmount validates and returns a NoiceAmount.
func NewNoiceAmount(value int) (NoiceAmount, error) {
	if value < 0 {
		return NoiceAmount{}, invalid("noiceAmount", "must be at least 0")
	}
	if value > MaxNoiceAmount {
		return NoiceAmount{}, invalidf("noiceAmount", "must be at most %d", MaxNoiceAmount)
	}
	return NoiceAmount{value: value}, nil
}

// MustNoiceAmount is like NewNoiceAmount but panics on invalid input.
func MustNoiceAmount(value int) NoiceAmount {
	a, err := NewNoiceAmount(value)
	if err != nil {
		panic(err)
	}
	return a
}

// ZeroNoiceAmount returns the zero amount.
func ZeroNoiceAmount() NoiceAmount { return NoiceAmount{} }

// Value returns the amount as an int.
func (a NoiceAmount) Value() int { return a.value }

// Add returns the sum of both amounts. It fails when the sum exceeds
// MaxNoiceAmount.
func (a NoiceAmount) Add(other NoiceAmount) (NoiceAmount, error) {
	return NewNoiceAmount(a.value + other.value)
}

// Subtract returns the difference of both amounts. It fails when the
// result would be negative.
func (a NoiceAmount) Subtract(other NoiceAmount) (NoiceAmount, error) {
	return NewNoiceAmount(a.value - other.value)
}

// AtLeast reports whether a >= other.
func (a NoiceAmount) AtLeast(other NoiceAmount) bool {
	return a.value >= other.value
}

// RupeeAmount is a non-negative secondary currency balance.
type RupeeAmount struct {
	value int
}

// NewRupeeAmount validates and returns a RupeeAmount.
func NewRupeeAmount(value int) (RupeeAmount, error) {
	if value < 0 {
		return RupeeAmount{}, invalid("rupeeAmount", "must be at least 0")
	}
	return RupeeAmount{value: value}, nil
}

// MustRupeeAmount is like NewRupeeAmount but panics on invalid input.
func MustRupeeAmount(value int) RupeeAmount {
	a, err := NewRupeeAmount(value)
	if err != nil {
		panic(err)
	}
	return a
}

// Value returns the amount as an int.
func (a RupeeAmount) Value() int { return a.value }

// NoiceLimit caps how many noice reactions a single user may place within
// a group. Limits shrink (or stay equal) down the group hierarchy.
type NoiceLimit struct {
	value int
}

// NewNoiceLimit validates and returns a NoiceLimit. The limit must be a
// positive integer.
func NewNoiceLimit(value int) (NoiceLimit, error) {
	if value < 1 {
		return NoiceLimit{}, invalid("noiceLimit", "must be a positive integer")
	}
	return NoiceLimit{value: value}, nil
}

// DefaultNoiceLimit is the limit applied to groups that do not declare
// one of their own.
func DefaultNoiceLimit() NoiceLimit { return NoiceLimit{value: 4} }

// MustNoiceLimit is like NewNoiceLimit but panics on invalid input.
func MustNoiceLimit(value int) NoiceLimit {
	l, err := NewNoiceLimit(value)
	if err != nil {
		panic(err)
	}
	return l
}

// Value returns the limit as an int.
func (l NoiceLimit) Value() int { return l.value }
