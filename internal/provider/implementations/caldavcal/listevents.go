package caldavcal

import (
	"context"
	"net/http"
	"time"

	"github.com/emersion/go-webdav/caldav"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/rs/zerolog"
)

type queryRequest struct {
	params        schema.EventsRequestParams
	configuration Configuration
	logger        *zerolog.Logger
}

func (q *queryRequest) Execute(ctx context.Context, httpTransport *http.Transport) (schema.EventsResponse, error) {
	events := schema.EventsResponse{Events: []schema.BusyEvent{}}

	requestsBucket := schema.NewProviderRequestsBucket()
	events.ProviderRequests = requestsBucket.ProviderRequests()

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, schema.CalendarQuery)

	client, err := newClient(q.configuration, httpTransport, q.logger, &requestsBucket)
	if err != nil {
		return events, schema.NewError(schema.ProviderQueryError, "failed to build caldav client", err)
	}

	window := q.params.Window

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name: "VCALENDAR",
			Comps: []caldav.CalendarCompRequest{{
				Name:     "VEVENT",
				AllProps: true,
			}},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{{
				Name:  "VEVENT",
				Start: window.Start.UTC(),
				End:   window.End.UTC(),
			}},
		},
	}

	objects, err := client.QueryCalendar(ctx, q.configuration.CalendarPath, query)
	if err != nil {
		return events, schema.NewError(schema.ProviderQueryError, "calendar query failed", err)
	}

	for _, object := range objects {
		if object.Data == nil {
			continue
		}

		for _, event := range object.Data.Events() {
			start, startErr := event.DateTimeStart(time.Local)
			end, endErr := event.DateTimeEnd(time.Local)
			if startErr != nil || endErr != nil {
				continue
			}

			eventWindow := schema.TimeWindow{Start: start, End: end}

			// Some servers return whole objects whose events fall outside
			// the requested range; filter again locally.
			if !eventWindow.Overlaps(window) {
				continue
			}

			summary, _ := event.Props.Text("SUMMARY")

			events.Events = append(events.Events, schema.BusyEvent{
				Summary: summary,
				Window:  eventWindow,
			})
		}
	}

	return events, nil
}
