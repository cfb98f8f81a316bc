package scheduling

import (
	"fmt"
	"time"

	"clinic-consent-api/internal/model"
)

// Window is the range of dates a patient may book: the next Days calendar
// days, starting tomorrow.
type Window struct {
	Days int
}

func (w Window) Dates(now time.Time) []time.Time {
	today := model.DateOf(now)
	out := make([]time.Time, w.Days)
	for i := range out {
		out[i] = today.AddDate(0, 0, i+1)
	}
	return out
}

func (w Window) Validate(now, date time.Time) error {
	today := model.DateOf(now)
	d := model.DateOf(date)
	if !d.After(today) || d.After(today.AddDate(0, 0, w.Days)) {
		return fmt.Errorf("%s is outside the next %d days: %w", d.Format(model.DateLayout), w.Days, model.ErrInvalidDate)
	}
	return nil
}
