package interfaces

import (
	"context"

	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/rs/zerolog"
)

type WithListEvents interface {
	ListEventsInRange(context.Context, schema.EventsRequestParams, *zerolog.Logger) (schema.EventsResponse, error)
}

type WithCreateEvent interface {
	CreateEvent(context.Context, schema.EventRequest, *zerolog.Logger) (schema.EventResponse, error)
}

// WithAvailabilityGrouping lets a provider name the redis key under which
// identical concurrent availability lookups are collapsed.
type WithAvailabilityGrouping interface {
	AvailabilityGroupingCacheKey(context.Context, schema.AvailabilityRequestParams, *zerolog.Logger) string
}
