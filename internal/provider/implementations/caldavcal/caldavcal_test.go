package caldavcal_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/holycityautospa/booking-hub/internal/provider/implementations/caldavcal"
	"github.com/holycityautospa/booking-hub/internal/schema"
)

func testConfiguration(serverUrl string) caldavcal.Configuration {
	return caldavcal.Configuration{
		URL:          serverUrl,
		Username:     "booking",
		Password:     "secret",
		CalendarPath: "/calendars/booking/work",
		TimeoutMs:    2000,
	}
}

func defaultWindow() schema.TimeWindow {
	return schema.TimeWindow{
		Start: time.Date(2024, time.June, 4, 9, 0, 0, 0, time.Local),
		End:   time.Date(2024, time.June, 4, 11, 0, 0, 0, time.Local),
	}
}

// ICS payloads must be CRLF separated
func icsEvent(uid string, summary string, start time.Time, end time.Time) string {
	return strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:20240601T120000Z",
		"SUMMARY:" + summary,
		"DTSTART:" + start.UTC().Format("20060102T150405Z"),
		"DTEND:" + end.UTC().Format("20060102T150405Z"),
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")
}

func multistatusResponse(href string, calendarData string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<multistatus xmlns="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav">
  <response>
    <href>` + href + `</href>
    <propstat>
      <prop>
        <getetag>"2024-1"</getetag>
        <C:calendar-data>` + calendarData + `</C:calendar-data>
      </prop>
      <status>HTTP/1.1 200 OK</status>
    </propstat>
  </response>
</multistatus>`
}

func TestQueryCalendar(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should report events inside the requested range", func(t *testing.T) {
		window := defaultWindow()

		busyStart := time.Date(2024, time.June, 4, 9, 30, 0, 0, time.Local)
		busyEnd := time.Date(2024, time.June, 4, 10, 30, 0, 0, time.Local)

		requestCount := 0
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCount++

			assert.Equal(t, "REPORT", r.Method)
			assert.Equal(t, "/calendars/booking/work", r.URL.Path)

			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "booking", username)
			assert.Equal(t, "secret", password)

			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), "VEVENT")
			assert.Contains(t, string(body), "time-range")

			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			w.WriteHeader(http.StatusMultiStatus)
			w.Write([]byte(multistatusResponse(
				"/calendars/booking/work/busy1.ics",
				icsEvent("busy1", "mini-detail - Bob", busyStart, busyEnd),
			)))
		}))
		defer testServer.Close()

		calendar := caldavcal.New(testConfiguration(testServer.URL))

		response, err := calendar.ListEventsInRange(
			context.Background(),
			schema.EventsRequestParams{Window: window},
			&log,
		)

		assert.Nil(t, err)
		assert.Equal(t, 1, requestCount)
		assert.Len(t, response.Events, 1)
		assert.Equal(t, "mini-detail - Bob", response.Events[0].Summary)
		assert.True(t, response.Events[0].Window.Overlaps(window))
	})

	t.Run("should drop events the server returned outside the range", func(t *testing.T) {
		window := defaultWindow()

		// same day, but after the requested window
		outsideStart := time.Date(2024, time.June, 4, 15, 0, 0, 0, time.Local)
		outsideEnd := time.Date(2024, time.June, 4, 16, 0, 0, 0, time.Local)

		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			w.WriteHeader(http.StatusMultiStatus)
			w.Write([]byte(multistatusResponse(
				"/calendars/booking/work/later.ics",
				icsEvent("later", "exterior-detail - Ann", outsideStart, outsideEnd),
			)))
		}))
		defer testServer.Close()

		calendar := caldavcal.New(testConfiguration(testServer.URL))

		response, err := calendar.ListEventsInRange(
			context.Background(),
			schema.EventsRequestParams{Window: window},
			&log,
		)

		assert.Nil(t, err)
		assert.Empty(t, response.Events)
	})

	t.Run("should surface server failures as query errors", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer testServer.Close()

		calendar := caldavcal.New(testConfiguration(testServer.URL))

		_, err := calendar.ListEventsInRange(
			context.Background(),
			schema.EventsRequestParams{Window: defaultWindow()},
			&log,
		)

		assert.NotNil(t, err)
		assert.Equal(t, schema.ProviderQueryError, schema.KindOf(err))
	})
}

func TestPutCalendarObject(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	eventRequest := schema.EventRequest{
		UID:         "3c9d3f2e6f1a4b5c8d7e9f0a1b2c3d4e",
		Summary:     "full-detail - Jane Doe",
		Description: "Customer: Jane Doe",
		Window:      defaultWindow(),
	}

	t.Run("should upload the event under its deterministic path", func(t *testing.T) {
		var requestBody string
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PUT", r.Method)
			assert.Equal(t, "/calendars/booking/work/3c9d3f2e6f1a4b5c8d7e9f0a1b2c3d4e.ics", r.URL.Path)

			body, _ := io.ReadAll(r.Body)
			requestBody = string(body)

			w.Header().Set("ETag", `"2024-2"`)
			w.WriteHeader(http.StatusCreated)
		}))
		defer testServer.Close()

		calendar := caldavcal.New(testConfiguration(testServer.URL))

		response, err := calendar.CreateEvent(context.Background(), eventRequest, &log)

		assert.Nil(t, err)
		assert.Equal(t, eventRequest.UID, response.ProviderEventRef)
		assert.Contains(t, requestBody, "UID:3c9d3f2e6f1a4b5c8d7e9f0a1b2c3d4e")
		assert.Contains(t, requestBody, "SUMMARY:full-detail - Jane Doe")
		assert.Contains(t, requestBody, "BEGIN:VEVENT")
	})

	t.Run("should surface upload failures as write errors", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer testServer.Close()

		calendar := caldavcal.New(testConfiguration(testServer.URL))

		_, err := calendar.CreateEvent(context.Background(), eventRequest, &log)

		assert.NotNil(t, err)
		assert.Equal(t, schema.ProviderWriteError, schema.KindOf(err))
	})
}
