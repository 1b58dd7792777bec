package scheduling

import (
	"context"
	"time"

	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/rs/zerolog"
)

// Business hours; slots start on the whole hour and must end by WorkEndHour.
const (
	WorkStartHour = 8
	WorkEndHour   = 18
)

// ClosedDays never offer slots, whatever the calendar says.
var ClosedDays = map[time.Weekday]bool{
	time.Sunday: true,
	time.Monday: true,
}

// Checker reports whether a window is free of conflicting calendar events.
// Provider failures must propagate; reporting "free" on error risks a
// double booking.
type Checker interface {
	IsFree(ctx context.Context, window schema.TimeWindow, logger *zerolog.Logger) (bool, error)
}

// Enumerate scans one business day for free slots of the requested length,
// ascending by start time. Closed days return no slots without consulting
// the checker. A duration longer than the business day yields no slots.
func Enumerate(
	ctx context.Context,
	date time.Time,
	hours schema.Hours,
	checker Checker,
	logger *zerolog.Logger,
) ([]schema.TimeWindow, error) {
	slots := []schema.TimeWindow{}

	if ClosedDays[date.Weekday()] {
		return slots, nil
	}

	year, month, day := date.Date()
	dayEnd := time.Date(year, month, day, WorkEndHour, 0, 0, 0, time.Local)
	duration := hours.Duration()

	for startHour := WorkStartHour; startHour < WorkEndHour; startHour++ {
		start := time.Date(year, month, day, startHour, 0, 0, 0, time.Local)
		window := schema.TimeWindow{Start: start, End: start.Add(duration)}

		if window.End.After(dayEnd) {
			break
		}

		free, err := checker.IsFree(ctx, window, logger)
		if err != nil {
			return nil, err
		}

		if free {
			slots = append(slots, window)
		}
	}

	return slots, nil
}
