package requesting

import (
	"fmt"
	"net/http"
	"os"

	"github.com/holycityautospa/booking-hub/internal/schema"
)

func isValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

// RequestErrors folds transport errors and non-2xx statuses into one
// schema.Error of the given kind. Timeouts and connection failures keep
// the same kind; the provider call they interrupted defines the class.
func RequestErrors(kind schema.ErrorKind, response *http.Response, err error) (*http.Response, *schema.Error) {
	if err != nil {
		if os.IsTimeout(err) {
			return nil, schema.NewError(kind, "provider request timed out", err)
		}

		return nil, schema.NewError(kind, "provider connection failed", err)
	}

	if !isValidResponse(response.StatusCode) {
		return nil, schema.NewError(kind, fmt.Sprintf("provider returned status code %d", response.StatusCode), nil)
	}

	return response, nil
}
