package googlecal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/caching"
	"github.com/holycityautospa/booking-hub/internal/tools/slowlog"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const calendarScope = "https://www.googleapis.com/auth/calendar"

type Configuration struct {
	ServiceAccountEmail string
	PrivateKey          string
	CalendarID          string
	TokenURL            string
	APIBaseURL          string
	TimeoutMs           int
}

func ConfigurationFromEnv() Configuration {
	timeout, err := strconv.Atoi(os.Getenv("GOOGLE_TIMEOUT_MS"))
	if err != nil || timeout <= 0 {
		timeout = 8000
	}

	return Configuration{
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		// .env files carry the key with escaped newlines
		PrivateKey: strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
		CalendarID: os.Getenv("GOOGLE_CALENDAR_ID"),
		TokenURL:   "https://oauth2.googleapis.com/token",
		APIBaseURL: "https://www.googleapis.com/calendar/v3",
		TimeoutMs:  timeout,
	}
}

type googleCalendar struct {
	configuration Configuration
	redis         *redis.Client
	httpTransport *http.Transport
}

func New(configuration Configuration, redisClient *redis.Client) *googleCalendar {
	transport := http.DefaultTransport.(*http.Transport)
	// improves durations a lot
	transport.DisableKeepAlives = true

	return &googleCalendar{
		configuration: configuration,
		redis:         redisClient,
		httpTransport: transport,
	}
}

func (g *googleCalendar) ListEventsInRange(ctx context.Context, params schema.EventsRequestParams, logger *zerolog.Logger) (schema.EventsResponse, error) {
	listRequest := listRequest{
		params:        params,
		configuration: g.configuration,
		logger:        logger,
		slowLogger:    slowlog.CreateLogger(logger),
		cache:         caching.NewRedisCache(g.redis),
	}

	return listRequest.Execute(ctx, g.httpTransport)
}

func (g *googleCalendar) AvailabilityGroupingCacheKey(ctx context.Context, params schema.AvailabilityRequestParams, logger *zerolog.Logger) string {
	return fmt.Sprintf(
		"availability:google:%s:%s:%g",
		g.configuration.CalendarID,
		params.Date.Format(schema.DateFormat),
		float64(params.Hours),
	)
}

func (g *googleCalendar) CreateEvent(ctx context.Context, params schema.EventRequest, logger *zerolog.Logger) (schema.EventResponse, error) {
	insertRequest := insertRequest{
		params:        params,
		configuration: g.configuration,
		logger:        logger,
		cache:         caching.NewRedisCache(g.redis),
	}

	return insertRequest.Execute(ctx, g.httpTransport)
}
