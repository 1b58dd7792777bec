package googlecal

import (
	"context"
	jsonEncoding "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/holycityautospa/booking-hub/internal/provider/implementations/googlecal/json"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/caching"
	"github.com/holycityautospa/booking-hub/internal/tools/requesting"
	"github.com/holycityautospa/booking-hub/internal/tools/slowlog"
	"github.com/rs/zerolog"
)

// A slot scan lists the same calendar once per candidate window, so list
// responses are cached briefly. Freshness is advisory either way: no hold
// is taken on a reported-free window.
const listCacheTTL = 30 * time.Second

type listRequest struct {
	params        schema.EventsRequestParams
	configuration Configuration
	logger        *zerolog.Logger
	slowLogger    slowlog.Logger
	cache         *caching.Cacher
}

func (l *listRequest) Execute(ctx context.Context, httpTransport *http.Transport) (schema.EventsResponse, error) {
	events := schema.EventsResponse{Events: []schema.BusyEvent{}}

	requestsBucket := schema.NewProviderRequestsBucket()
	events.ProviderRequests = requestsBucket.ProviderRequests()

	l.slowLogger.Start("googlecal:events-list")
	defer l.slowLogger.Stop("googlecal:events-list")

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, schema.EventsList)

	var cachedEvents []schema.BusyEvent
	ok := l.cache.Fetch(ctx, l.getCacheKey(), &cachedEvents)
	if ok {
		events.Events = cachedEvents

		return events, nil
	}

	authRequest := authRequest{
		configuration: l.configuration,
		logger:        l.logger,
		cache:         l.cache,
	}

	auth, err := authRequest.Execute(httpTransport)
	requestsBucket.AddRequests(*auth.ProviderRequests)
	if err != nil {
		return events, err
	}

	client := &http.Client{
		Timeout: time.Duration(l.configuration.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(l.logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
			},
		},
	}

	rawResponse, rawErr := l.makeRequest(ctx, client, *auth.Token)
	response, e := requesting.RequestErrors(schema.ProviderQueryError, rawResponse, rawErr)
	if e != nil {
		return events, e
	}

	bodyBytes, _ := io.ReadAll(response.Body)
	response.Body.Close()

	var jsonEventsResponse json.EventsRS
	jsonErr := jsonEncoding.Unmarshal(bodyBytes, &jsonEventsResponse)
	if jsonErr != nil {
		return events, schema.NewError(schema.ProviderQueryError, "failed to decode events response", jsonErr)
	}

	events.Events = busyEvents(jsonEventsResponse)

	cacheErr := l.cache.Store(ctx, l.getCacheKey(), events.Events, listCacheTTL)
	if cacheErr != nil {
		l.logger.Warn().Err(cacheErr).Msg("Unable to cache events list response")
	}

	return events, nil
}

func busyEvents(response json.EventsRS) []schema.BusyEvent {
	busy := []schema.BusyEvent{}

	for _, item := range response.Items {
		if item.Status == "cancelled" {
			continue
		}

		start, startOk := item.Start.Time()
		end, endOk := item.End.Time()
		if !startOk || !endOk {
			continue
		}

		busy = append(busy, schema.BusyEvent{
			Summary: item.Summary,
			Window:  schema.TimeWindow{Start: start, End: end},
		})
	}

	return busy
}

type listQuery struct {
	TimeMin      string `url:"timeMin"`
	TimeMax      string `url:"timeMax"`
	SingleEvents bool   `url:"singleEvents"`
	MaxResults   int    `url:"maxResults"`
}

func (l *listRequest) makeRequest(ctx context.Context, client *http.Client, token string) (*http.Response, error) {
	values, _ := query.Values(listQuery{
		TimeMin:      l.params.Window.Start.Format(time.RFC3339),
		TimeMax:      l.params.Window.End.Format(time.RFC3339),
		SingleEvents: true,
		MaxResults:   250,
	})

	requestUrl := fmt.Sprintf(
		"%s/calendars/%s/events?%s",
		l.configuration.APIBaseURL,
		url.PathEscape(l.configuration.CalendarID),
		values.Encode(),
	)

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Authorization", "Bearer "+token)

	return client.Do(httpRequest)
}

func (l *listRequest) getCacheKey() string {
	return fmt.Sprintf(
		"googlecal-events:%s:%s-%s",
		l.configuration.CalendarID,
		l.params.Window.Start.Format(schema.DateTimeFormat),
		l.params.Window.End.Format(schema.DateTimeFormat),
	)
}
