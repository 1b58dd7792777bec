package googlecal

import (
	"bytes"
	"context"
	jsonEncoding "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/holycityautospa/booking-hub/internal/provider/implementations/googlecal/json"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/caching"
	"github.com/holycityautospa/booking-hub/internal/tools/requesting"
	"github.com/rs/zerolog"
)

type insertRequest struct {
	params        schema.EventRequest
	configuration Configuration
	logger        *zerolog.Logger
	cache         *caching.Cacher
}

func (i *insertRequest) Execute(ctx context.Context, httpTransport *http.Transport) (schema.EventResponse, error) {
	event := schema.EventResponse{}

	requestsBucket := schema.NewProviderRequestsBucket()
	event.ProviderRequests = requestsBucket.ProviderRequests()

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, schema.EventInsert)

	authRequest := authRequest{
		configuration: i.configuration,
		logger:        i.logger,
		cache:         i.cache,
	}

	auth, err := authRequest.Execute(httpTransport)
	requestsBucket.AddRequests(*auth.ProviderRequests)
	if err != nil {
		return event, err
	}

	client := &http.Client{
		Timeout: time.Duration(i.configuration.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(i.logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
			},
		},
	}

	response, requestErr := i.makeRequest(ctx, client, *auth.Token)

	// The event id is deterministic, so a conflict means an earlier attempt
	// already inserted this booking. Retries stay idempotent.
	if requestErr == nil && response.StatusCode == http.StatusConflict {
		response.Body.Close()

		event.AlreadyExisted = true
		event.ProviderEventRef = i.params.UID

		return event, nil
	}

	validResponse, e := requesting.RequestErrors(schema.ProviderWriteError, response, requestErr)
	if e != nil {
		return event, e
	}

	bodyBytes, _ := io.ReadAll(validResponse.Body)
	validResponse.Body.Close()

	var jsonInsertResponse json.EventItem
	jsonErr := jsonEncoding.Unmarshal(bodyBytes, &jsonInsertResponse)
	if jsonErr != nil {
		return event, schema.NewError(schema.ProviderWriteError, "failed to decode insert response", jsonErr)
	}

	event.ProviderEventRef = jsonInsertResponse.Id

	return event, nil
}

func (i *insertRequest) makeRequest(ctx context.Context, client *http.Client, token string) (*http.Response, error) {
	body := bytes.NewBuffer(i.requestBody())

	requestUrl := fmt.Sprintf(
		"%s/calendars/%s/events",
		i.configuration.APIBaseURL,
		url.PathEscape(i.configuration.CalendarID),
	)

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, requestUrl, body)
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+token)

	return client.Do(httpRequest)
}

func (i *insertRequest) requestBody() []byte {
	encoded, _ := jsonEncoding.Marshal(&json.EventRQ{
		Id:          i.params.UID,
		Summary:     i.params.Summary,
		Description: i.params.Description,
		Start:       json.EventTime{DateTime: i.params.Window.Start.Format(time.RFC3339)},
		End:         json.EventTime{DateTime: i.params.Window.End.Format(time.RFC3339)},
	})

	return encoded
}
