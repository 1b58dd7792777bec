package caldavcal

import (
	"context"
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/rs/zerolog"
)

type putRequest struct {
	params        schema.EventRequest
	configuration Configuration
	logger        *zerolog.Logger
}

func (p *putRequest) Execute(ctx context.Context, httpTransport *http.Transport) (schema.EventResponse, error) {
	event := schema.EventResponse{}

	requestsBucket := schema.NewProviderRequestsBucket()
	event.ProviderRequests = requestsBucket.ProviderRequests()

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, schema.CalendarPut)

	client, err := newClient(p.configuration, httpTransport, p.logger, &requestsBucket)
	if err != nil {
		return event, schema.NewError(schema.ProviderWriteError, "failed to build caldav client", err)
	}

	// The object path is derived from the deterministic UID, so a retried
	// booking overwrites its own object instead of duplicating it.
	path := objectPath(p.configuration, p.params.UID)

	_, err = client.PutCalendarObject(ctx, path, p.calendarObject())
	if err != nil {
		return event, schema.NewError(schema.ProviderWriteError, "calendar object upload failed", err)
	}

	event.ProviderEventRef = p.params.UID

	return event, nil
}

func (p *putRequest) calendarObject() *ical.Calendar {
	icalEvent := ical.NewEvent()
	icalEvent.Props.SetText(ical.PropUID, p.params.UID)
	icalEvent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	icalEvent.Props.SetText(ical.PropSummary, p.params.Summary)
	icalEvent.Props.SetText(ical.PropDescription, p.params.Description)
	icalEvent.Props.SetDateTime(ical.PropDateTimeStart, p.params.Window.Start.UTC())
	icalEvent.Props.SetDateTime(ical.PropDateTimeEnd, p.params.Window.End.UTC())

	calendar := ical.NewCalendar()
	calendar.Props.SetText(ical.PropProductID, "-//holycityautospa//booking-hub//EN")
	calendar.Props.SetText(ical.PropVersion, "2.0")
	calendar.Children = append(calendar.Children, icalEvent.Component)

	return calendar
}
