package schema

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04"
	DateTimeFormat = "2006-01-02T15:04:05"
)

// TimeWindow is a half-open appointment interval, End = Start + duration.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

type BookingRequestParams struct {
	Service string              `json:"service"`
	Size    *int                `json:"size,omitempty"`
	Name    string              `json:"name"`
	Phone   string              `json:"phone"`
	Email   openapi_types.Email `json:"email"`
	Address string              `json:"address"`
	Date    openapi_types.Date  `json:"date"`
	Time    string              `json:"time"`
	Dropoff *bool               `json:"dropoff,omitempty"`
	Make    string              `json:"make"`
	Model   string              `json:"model"`
	Year    string              `json:"year"`
}

type AvailabilityRequestParams struct {
	Date  openapi_types.Date `json:"date"`
	Hours Hours              `json:"hours"`
}

type SlotTimes struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityResponse struct {
	Times []SlotTimes `json:"times"`
}

type BookingResponse struct {
	Success bool `json:"success"`
}

// EventRequest describes one calendar entry to be created by a provider.
type EventRequest struct {
	UID         string
	Summary     string
	Description string
	Window      TimeWindow
}

type EventResponse struct {
	ProviderEventRef string
	AlreadyExisted   bool
	ProviderRequests *ProviderRequests
}

type EventsRequestParams struct {
	Window TimeWindow
}

type BusyEvent struct {
	Summary string
	Window  TimeWindow
}

type EventsResponse struct {
	Events           []BusyEvent
	ProviderRequests *ProviderRequests
}
