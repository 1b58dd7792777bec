// Package grouping collapses concurrent identical availability requests
// into a single upstream calendar query, coordinated through redis.
package grouping

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/holycityautospa/booking-hub/internal/provider/interfaces"
	"github.com/holycityautospa/booking-hub/internal/schema"
	webMiddleware "github.com/holycityautospa/booking-hub/internal/web/middleware"
)

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type RequestManager interface {
	HandleRequest(context.Context, func() (*Response, error)) (*Response, error)
}

type MiddlewareOptions struct {
	CreateManager func(
		redis *redis.Client,
		log *zerolog.Logger,
		cacheKey string,
	) RequestManager
	RedisClient *redis.Client
}

func Middleware(o MiddlewareOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := c.MustGet("logger").(*zerolog.Logger)

		provider, ok := c.MustGet(webMiddleware.ProviderKey).(interfaces.WithAvailabilityGrouping)
		if !ok {
			log.Warn().Msg("Grouping added to route, but provider not WithAvailabilityGrouping compatible")
			c.Next()
			return
		}

		params := c.MustGet(webMiddleware.ParamsKey).(*schema.AvailabilityRequestParams)

		cacheKey := provider.AvailabilityGroupingCacheKey(c.Request.Context(), *params, log)

		groupingManager := o.CreateManager(o.RedisClient, log, cacheKey)

		requester := func() (*Response, error) {
			bodyWriter := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
			c.Writer = bodyWriter

			// expects the availability handler to be called
			c.Next()

			code := c.Writer.Status()
			body := bodyWriter.body.String()
			headers := bodyWriter.Header()
			err := c.Err()

			return &Response{
				Code:    code,
				Body:    body,
				Headers: headers,
			}, err
		}

		response, err := groupingManager.HandleRequest(c.Request.Context(), requester)

		if !c.Writer.Written() {
			if err != nil {
				// A manager error at this point is lock or cache trouble,
				// not a bad request.
				webMiddleware.HandleError(
					c,
					http.StatusInternalServerError,
					"Error requesting availability",
					err,
				)
				return
			}

			for key, values := range response.Headers {
				for _, value := range values {
					c.Writer.Header().Add(key, value)
				}
			}

			c.Status(response.Code)
			c.Data(response.Code, gin.MIMEJSON, []byte(response.Body))
		}

		c.Abort()
	}
}
