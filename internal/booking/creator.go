// Package booking turns a validated request into a calendar event and a
// pair of confirmation emails.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/holycityautospa/booking-hub/internal/catalog"
	"github.com/holycityautospa/booking-hub/internal/mail"
	"github.com/holycityautospa/booking-hub/internal/provider/interfaces"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/converting"
)

type Creator struct {
	Events       interfaces.WithCreateEvent
	Mailer       mail.Sender
	Catalog      *catalog.Table
	OwnerEmail   string
	BusinessName string
}

// Create runs the three fallible steps in order: calendar event, customer
// email, owner email. A failed step aborts the remaining ones; earlier
// steps are not rolled back, so a retried request must produce the same
// event UID to stay idempotent.
func (c *Creator) Create(ctx context.Context, params schema.BookingRequestParams, logger *zerolog.Logger) (schema.BookingResponse, error) {
	response := schema.BookingResponse{}

	window, err := c.validate(params)
	if err != nil {
		return response, err
	}

	hours := c.Catalog.Lookup(params.Service, sizeClass(params))
	window.End = window.Start.Add(hours.Duration())

	event := schema.EventRequest{
		UID:         EventUID(params),
		Summary:     summary(params),
		Description: eventDescription(params),
		Window:      window,
	}

	created, err := c.Events.CreateEvent(ctx, event, logger)
	if err != nil {
		return response, err
	}

	if created.AlreadyExisted {
		logger.Info().Str("uid", event.UID).Msg("event already existed, treating as replay")
	}

	details := mail.BookingDetails{
		BusinessName: c.BusinessName,
		Service:      params.Service,
		Name:         params.Name,
		Phone:        params.Phone,
		Email:        string(params.Email),
		Address:      params.Address,
		Date:         params.Date.Format(schema.DateFormat),
		Time:         params.Time,
		Duration:     fmt.Sprintf("%g hours", float64(hours)),
		Vehicle:      vehicle(params),
		Dropoff:      converting.Unwrap(params.Dropoff),
	}

	if err := c.sendCustomerMail(ctx, details, logger); err != nil {
		return response, err
	}

	if err := c.sendOwnerMail(ctx, details, logger); err != nil {
		return response, err
	}

	response.Success = true

	return response, nil
}

func (c *Creator) validate(params schema.BookingRequestParams) (schema.TimeWindow, error) {
	window := schema.TimeWindow{}

	if params.Service == "" {
		return window, schema.NewValidationError("service is required")
	}

	if params.Name == "" {
		return window, schema.NewValidationError("name is required")
	}

	if params.Email == "" {
		return window, schema.NewValidationError("email is required")
	}

	if params.Date.IsZero() {
		return window, schema.NewValidationError("date is required")
	}

	startOfDay, err := time.ParseInLocation(schema.TimeFormat, params.Time, time.Local)
	if err != nil {
		return window, schema.NewValidationError(fmt.Sprintf("time %q is not in HH:MM format", params.Time))
	}

	date := params.Date.Time
	window.Start = time.Date(
		date.Year(), date.Month(), date.Day(),
		startOfDay.Hour(), startOfDay.Minute(), 0, 0,
		time.Local,
	)

	return window, nil
}

func (c *Creator) sendCustomerMail(ctx context.Context, details mail.BookingDetails, logger *zerolog.Logger) error {
	body, err := mail.CustomerBody(details)
	if err != nil {
		return schema.NewError(schema.MailError, "failed to render customer email", err)
	}

	message := mail.Message{
		To:      details.Email,
		Subject: fmt.Sprintf("Booking Received - %s", c.BusinessName),
		HTML:    body,
	}

	if err := c.Mailer.Send(ctx, message, logger); err != nil {
		return schema.NewError(schema.MailError, "failed to send customer email", err)
	}

	return nil
}

func (c *Creator) sendOwnerMail(ctx context.Context, details mail.BookingDetails, logger *zerolog.Logger) error {
	body, err := mail.OwnerBody(details)
	if err != nil {
		return schema.NewError(schema.MailError, "failed to render owner email", err)
	}

	message := mail.Message{
		To:      c.OwnerEmail,
		Subject: fmt.Sprintf("New Booking - %s on %s", details.Service, details.Date),
		HTML:    body,
	}

	if err := c.Mailer.Send(ctx, message, logger); err != nil {
		return schema.NewError(schema.MailError, "failed to send owner email", err)
	}

	return nil
}

// EventUID derives a stable calendar event id from the identifying fields
// of a booking, so a resubmitted form maps onto the same provider event.
func EventUID(params schema.BookingRequestParams) string {
	seed := strings.Join([]string{
		"holycityautospa-booking",
		params.Service,
		string(params.Email),
		params.Date.Format(schema.DateFormat),
		params.Time,
	}, "|")

	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed))

	// Lowercase hex without dashes keeps the id inside every provider's
	// accepted character set.
	return strings.ReplaceAll(id.String(), "-", "")
}

// summary titles the calendar event with the vehicle when one was given,
// so the owner's day view reads like a work queue.
func summary(params schema.BookingRequestParams) string {
	if v := vehicle(params); v != "" {
		return fmt.Sprintf("%s - %s", params.Service, v)
	}

	return fmt.Sprintf("%s - %s", params.Service, params.Name)
}

func eventDescription(params schema.BookingRequestParams) string {
	lines := []string{
		fmt.Sprintf("Customer: %s", params.Name),
		fmt.Sprintf("Phone: %s", params.Phone),
		fmt.Sprintf("Email: %s", params.Email),
	}

	if converting.Unwrap(params.Dropoff) {
		lines = append(lines, "Location: drop-off")
	} else if params.Address != "" {
		lines = append(lines, fmt.Sprintf("Location: %s", params.Address))
	}

	if v := vehicle(params); v != "" {
		lines = append(lines, fmt.Sprintf("Vehicle: %s", v))
	}

	return strings.Join(lines, "\n")
}

func sizeClass(params schema.BookingRequestParams) int {
	if params.Size == nil {
		return -1
	}

	return *params.Size
}

func vehicle(params schema.BookingRequestParams) string {
	parts := []string{}
	for _, part := range []string{params.Year, params.Make, params.Model} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, " ")
}
