package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NavPoint is one day of the normalized NAV series. Value starts at 100 on
// inception day; DailyReturn is the simple price-relative return, 0 on
// inception day.
type NavPoint struct {
	Date        time.Time
	Value       decimal.Decimal
	DailyReturn decimal.Decimal
}

type NavSeries []NavPoint

func (s NavSeries) First() NavPoint {
	return s[0]
}

func (s NavSeries) Last() NavPoint {
	return s[len(s)-1]
}

// AtOrAfter returns the first point dated at or after the given day, or nil.
func (s NavSeries) AtOrAfter(date time.Time) *NavPoint {
	for i := range s {
		if !s[i].Date.Before(date) {
			return &s[i]
		}
	}
	return nil
}
