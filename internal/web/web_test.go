package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/redisfactory"
	"github.com/holycityautospa/booking-hub/internal/web"
)

func setupTestRouter(t *testing.T) http.Handler {
	// Relative to this package directory, so the router tests run with the
	// request validator engaged rather than silently degraded.
	t.Setenv("OPENAPI_LOCATION", "../../api/openapi.json")
	t.Setenv("GROUPING_REDIS_URI", "redis://localhost:6390")
	t.Setenv("RESPONSES_CACHE_REDIS_URI", "redis://localhost:6390")
	t.Setenv("CALENDAR_PROVIDER", "google")
	t.Setenv("ALLOWED_ORIGINS", "https://holycityautospa.example")
	t.Setenv("BUSINESS_NAME", "Holy City Auto Spa")
	t.Setenv("TEST", "true")

	out := &bytes.Buffer{}
	log := zerolog.New(out)

	return web.SetupRouter(&log, redisfactory.New())
}

func TestLivenessRoutes(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("should answer the liveness probe", func(t *testing.T) {
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/", nil)

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "Booking API is running.")
	})

	t.Run("should report uptime", func(t *testing.T) {
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/status", nil)

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)

		status := struct {
			Uptime float64 `json:"uptime"`
		}{}
		assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &status))
		assert.GreaterOrEqual(t, status.Uptime, 0.0)
	})
}

func TestAvailabilityRoute(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("should answer closed days without consulting the calendar", func(t *testing.T) {
		// 2024-06-02 is a Sunday; no provider credentials are configured,
		// so any calendar call would fail loudly
		body := `{"date": "2024-06-02", "hours": 2}`

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/availability", bytes.NewBufferString(body))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)

		availability := schema.AvailabilityResponse{}
		assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &availability))
		assert.Empty(t, availability.Times)
	})

	t.Run("should reject non-positive hours", func(t *testing.T) {
		body := `{"date": "2024-06-04", "hours": 0}`

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/availability", bytes.NewBufferString(body))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)

		errorResponse := schema.ErrorResponse{}
		assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &errorResponse))
		assert.False(t, errorResponse.Success)
		assert.Equal(t, schema.ValidationError, errorResponse.Error.Code)
	})

	t.Run("should reject a missing date", func(t *testing.T) {
		body := `{"hours": 2}`

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/availability", bytes.NewBufferString(body))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func TestOpenapiValidation(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("should reject a schema-invalid request with the validation kind", func(t *testing.T) {
		// hours 0 violates the document's exclusive minimum, so the
		// rejection comes from the validator, not the route handler
		body := `{"date": "2024-06-04", "hours": 0}`

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/availability", bytes.NewBufferString(body))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)

		errorResponse := schema.ErrorResponse{}
		assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &errorResponse))
		assert.False(t, errorResponse.Success)
		assert.Equal(t, schema.ValidationError, errorResponse.Error.Code)
		assert.Equal(t, "Request does not match the API description", errorResponse.Error.Message)
	})

	t.Run("should reject a booking missing a required field at the boundary", func(t *testing.T) {
		body := `{"service": "full-detail", "email": "jane@example.com", "date": "2024-06-04", "time": "09:00"}`

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/book", bytes.NewBufferString(body))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)

		errorResponse := schema.ErrorResponse{}
		assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &errorResponse))
		assert.Equal(t, schema.ValidationError, errorResponse.Error.Code)
		assert.Equal(t, "Request does not match the API description", errorResponse.Error.Message)
	})
}

func TestBookingRoute(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("should reject incomplete bookings before any provider call", func(t *testing.T) {
		for _, path := range []string{"/book", "/api/book"} {
			body := `{"service": "full-detail", "email": "jane@example.com", "date": "2024-06-04", "time": "09:00"}`

			response := httptest.NewRecorder()
			request, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
			request.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(response, request)

			assert.Equal(t, http.StatusBadRequest, response.Code)

			errorResponse := schema.ErrorResponse{}
			assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &errorResponse))
			assert.Equal(t, schema.ValidationError, errorResponse.Error.Code)
		}
	})
}

func TestCors(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("should allow a configured origin", func(t *testing.T) {
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodOptions, "/api/availability", nil)
		request.Header.Set("Origin", "https://holycityautospa.example")
		request.Header.Set("Access-Control-Request-Method", "POST")

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusNoContent, response.Code)
		assert.Equal(
			t,
			"https://holycityautospa.example",
			response.Header().Get("Access-Control-Allow-Origin"),
		)
	})

	t.Run("should block an unknown origin", func(t *testing.T) {
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodOptions, "/api/availability", nil)
		request.Header.Set("Origin", "https://evil.example")
		request.Header.Set("Access-Control-Request-Method", "POST")

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusForbidden, response.Code)
		assert.Empty(t, response.Header().Get("Access-Control-Allow-Origin"))
	})
}
