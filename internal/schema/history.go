package schema

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/holycityautospa/booking-hub/internal/tools/converting"
)

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

// ProviderRequestName tags each outbound call against the calendar provider.
type ProviderRequestName string

const (
	Auth          ProviderRequestName = "auth"
	EventsList    ProviderRequestName = "events-list"
	EventInsert   ProviderRequestName = "event-insert"
	CalendarQuery ProviderRequestName = "calendar-query"
	CalendarPut   ProviderRequestName = "calendar-put"
)

type RequestContent struct {
	Url     *string         `json:"url,omitempty"`
	Method  *string         `json:"method,omitempty"`
	Body    *string         `json:"body,omitempty"`
	Headers *map[string]any `json:"headers,omitempty"`
}

type ResponseContent struct {
	StatusCode *int            `json:"statusCode,omitempty"`
	Body       *string         `json:"body,omitempty"`
	Headers    *map[string]any `json:"headers,omitempty"`
}

type ProviderRequest struct {
	Name            *ProviderRequestName `json:"name,omitempty"`
	StartDateTime   *time.Time           `json:"startDateTime,omitempty"`
	Duration        *int                 `json:"duration,omitempty"`
	RequestContent  *RequestContent      `json:"requestContent,omitempty"`
	ResponseContent *ResponseContent     `json:"responseContent,omitempty"`
}

type ProviderRequests []ProviderRequest

type providerRequestsBucket struct {
	providerRequests ProviderRequests
	sync.Mutex
}

func NewProviderRequestsBucket() providerRequestsBucket {
	return providerRequestsBucket{
		providerRequests: []ProviderRequest{},
	}
}

func (r *providerRequestsBucket) ProviderRequests() *ProviderRequests {
	return &r.providerRequests
}

func (r *providerRequestsBucket) AddRequests(requests ProviderRequests) {
	r.Lock()
	r.providerRequests = append(r.providerRequests, requests...)
	r.Unlock()
}

func (r *providerRequestsBucket) FinishedRequest(
	requestType ProviderRequestName,
	startTime time.Time,
	statusCode int,
	method string,
	url string,
	requestBody string,
	requestHeaders http.Header,
	responseBody string,
	responseHeaders http.Header,
) {
	reqHeaders := converting.ConvertMap(requestHeaders)

	req := RequestContent{
		Url:     &url,
		Method:  &method,
		Body:    &requestBody,
		Headers: &reqHeaders,
	}

	historyRequest := ProviderRequest{
		Name:           &requestType,
		RequestContent: &req,
	}

	resHeaders := converting.ConvertMap(responseHeaders)

	res := ResponseContent{
		StatusCode: &statusCode,
		Headers:    &resHeaders,
		Body:       &responseBody,
	}

	historyRequest.ResponseContent = &res

	if os.Getenv("TEST") != "true" {
		duration := int(time.Since(startTime).Milliseconds())
		historyRequest.Duration = &duration
		historyRequest.StartDateTime = &startTime
	}

	r.Lock()
	r.providerRequests = append(r.providerRequests, historyRequest)
	r.Unlock()
}
