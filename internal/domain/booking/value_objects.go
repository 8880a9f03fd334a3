package booking

import (
	"errors"
	"fmt"
	"time"
)

const nightsPerDay = 24 * time.Hour

// StayRange is a half-open date interval [checkIn, checkOut): the check-in
// day is occupied, the check-out day is free, so back-to-back stays never
// conflict.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	if !out.After(in) {
		return StayRange{}, ErrInvalidRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (s StayRange) CheckIn() time.Time {
	return s.checkIn
}

func (s StayRange) CheckOut() time.Time {
	return s.checkOut
}

// Overlaps reports interval intersection under half-open semantics:
// a conflict exists iff other.checkIn < s.checkOut AND other.checkOut > s.checkIn.
func (s StayRange) Overlaps(other StayRange) bool {
	return other.checkIn.Before(s.checkOut) && other.checkOut.After(s.checkIn)
}

func (s StayRange) Nights() int {
	return int(s.checkOut.Sub(s.checkIn) / nightsPerDay)
}

func (s StayRange) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", s.checkIn.Format("2006-01-02"), s.checkOut.Format("2006-01-02"))
}

// Money is an amount in the minor unit of its booking's currency (cents).
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) MultiplyNights(nights int) Money {
	return Money{cents: m.cents * int64(nights)}
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

type GuestCount struct {
	value int
}

func NewGuestCount(guests int) (GuestCount, error) {
	if guests <= 0 {
		return GuestCount{}, ErrInvalidGuestCount
	}
	return GuestCount{value: guests}, nil
}

func (g GuestCount) Value() int {
	return g.value
}
