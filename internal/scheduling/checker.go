package scheduling

import (
	"context"

	"github.com/holycityautospa/booking-hub/internal/provider/interfaces"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/rs/zerolog"
)

// ProviderChecker answers free/busy from the configured calendar provider.
// Purely advisory: no hold is taken, so a slot can still race with a
// concurrent booking.
type ProviderChecker struct {
	events interfaces.WithListEvents
}

func NewProviderChecker(events interfaces.WithListEvents) *ProviderChecker {
	return &ProviderChecker{events: events}
}

func (c *ProviderChecker) IsFree(ctx context.Context, window schema.TimeWindow, logger *zerolog.Logger) (bool, error) {
	response, err := c.events.ListEventsInRange(ctx, schema.EventsRequestParams{Window: window}, logger)
	if err != nil {
		return false, err
	}

	return len(response.Events) == 0, nil
}
