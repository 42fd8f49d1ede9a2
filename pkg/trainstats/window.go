package trainstats

import (
	"errors"
	"fmt"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

const DefaultWindow = "P1D"

var ErrInvalidWindow = errors.New("window must be a positive ISO8601 duration")

// Window is how far back from now announcements are requested.
type Window struct {
	value    string
	duration iso8601.Duration
}

func ParseWindow(value string) (Window, error) {
	if value == "" {
		value = DefaultWindow
	}

	duration, err := iso8601.ParseISO8601(value)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %s", ErrInvalidWindow, err)
	}

	window := Window{value: value, duration: duration}
	if window.Span(time.Now()) <= 0 {
		return Window{}, ErrInvalidWindow
	}

	return window, nil
}

func (w Window) Span(reference time.Time) time.Duration {
	reference = reference.UTC()

	return w.duration.Shift(reference).Sub(reference)
}

// DateAdd renders the window as a provider $dateadd macro reaching back from
// the provider's current time. Whole days use the short form.
func (w Window) DateAdd(reference time.Time) string {
	span := w.Span(reference)

	days := int(span / (24 * time.Hour))
	remainder := span % (24 * time.Hour)

	if remainder == 0 {
		return fmt.Sprintf("$dateadd(-%d)", days)
	}

	hours := int(remainder / time.Hour)
	minutes := int(remainder % time.Hour / time.Minute)
	seconds := int(remainder % time.Minute / time.Second)

	return fmt.Sprintf("$dateadd(-%d.%02d:%02d:%02d)", days, hours, minutes, seconds)
}

func (w Window) String() string {
	return w.value
}
