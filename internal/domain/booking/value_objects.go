package booking

import "agrirent/internal/pkg/errs"

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

// Rescale shrinks the amount proportionally when part of a booking's dates
// are cancelled: cents * remaining / original, integer division.
func (m Money) Rescale(remainingDates, originalDates int) Money {
	if originalDates <= 0 {
		return Money{}
	}
	return Money{cents: m.cents * int64(remainingDates) / int64(originalDates)}
}
