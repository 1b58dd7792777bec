package caldavcal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/requesting"
	"github.com/rs/zerolog"
)

type Configuration struct {
	URL          string
	Username     string
	Password     string
	CalendarPath string
	TimeoutMs    int
}

func ConfigurationFromEnv() Configuration {
	timeout, err := strconv.Atoi(os.Getenv("CALDAV_TIMEOUT_MS"))
	if err != nil || timeout <= 0 {
		timeout = 8000
	}

	return Configuration{
		URL:          os.Getenv("CALDAV_URL"),
		Username:     os.Getenv("CALDAV_USERNAME"),
		Password:     os.Getenv("CALDAV_PASSWORD"),
		CalendarPath: os.Getenv("CALDAV_CALENDAR_PATH"),
		TimeoutMs:    timeout,
	}
}

type caldavCalendar struct {
	configuration Configuration
	httpTransport *http.Transport
}

func New(configuration Configuration) *caldavCalendar {
	transport := http.DefaultTransport.(*http.Transport)
	// improves durations a lot
	transport.DisableKeepAlives = true

	return &caldavCalendar{
		configuration: configuration,
		httpTransport: transport,
	}
}

func (c *caldavCalendar) ListEventsInRange(ctx context.Context, params schema.EventsRequestParams, logger *zerolog.Logger) (schema.EventsResponse, error) {
	queryRequest := queryRequest{
		params:        params,
		configuration: c.configuration,
		logger:        logger,
	}

	return queryRequest.Execute(ctx, c.httpTransport)
}

func (c *caldavCalendar) AvailabilityGroupingCacheKey(ctx context.Context, params schema.AvailabilityRequestParams, logger *zerolog.Logger) string {
	return fmt.Sprintf(
		"availability:caldav:%s:%s:%g",
		c.configuration.CalendarPath,
		params.Date.Format(schema.DateFormat),
		float64(params.Hours),
	)
}

func (c *caldavCalendar) CreateEvent(ctx context.Context, params schema.EventRequest, logger *zerolog.Logger) (schema.EventResponse, error) {
	putRequest := putRequest{
		params:        params,
		configuration: c.configuration,
		logger:        logger,
	}

	return putRequest.Execute(ctx, c.httpTransport)
}

// newClient wires the DAV library through the shared interceptor transport
// so outbound REPORT/PUT calls are logged and recorded like any other
// provider traffic.
func newClient(
	configuration Configuration,
	httpTransport *http.Transport,
	logger *zerolog.Logger,
	bucket requesting.RequestBucket,
) (*caldav.Client, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(configuration.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(logger),
				requesting.NewBucketTransportMiddleware(bucket),
			},
		},
	}

	return caldav.NewClient(
		webdav.HTTPClientWithBasicAuth(httpClient, configuration.Username, configuration.Password),
		configuration.URL,
	)
}

func objectPath(configuration Configuration, uid string) string {
	return strings.TrimSuffix(configuration.CalendarPath, "/") + "/" + uid + ".ics"
}
