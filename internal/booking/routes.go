package booking

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/holycityautospa/booking-hub/internal/catalog"
	"github.com/holycityautospa/booking-hub/internal/grouping"
	"github.com/holycityautospa/booking-hub/internal/mail"
	"github.com/holycityautospa/booking-hub/internal/provider/errors"
	"github.com/holycityautospa/booking-hub/internal/provider/factory"
	"github.com/holycityautospa/booking-hub/internal/provider/interfaces"
	"github.com/holycityautospa/booking-hub/internal/scheduling"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/redisfactory"
	"github.com/holycityautospa/booking-hub/internal/tools/slowlog"
	"github.com/holycityautospa/booking-hub/internal/web/middleware"
)

type RoutesOptions struct {
	ProviderName string
	Catalog      *catalog.Table
	Mailer       mail.Sender
	OwnerEmail   string
	BusinessName string
}

func RegisterRoutes(
	router *gin.Engine,
	factory *factory.Factory,
	redisFactory *redisfactory.Factory,
	options RoutesOptions,
) {
	group := router.Group(
		"",
		middleware.PrepareProvider(factory, options.ProviderName),
		middleware.TapLogger,
	)

	group.POST("/api/availability",
		middleware.PrepareParams(schema.AvailabilityRequestParams{}),
		grouping.Middleware(grouping.MiddlewareOptions{
			CreateManager: grouping.NewRequestManager,
			RedisClient:   redisFactory.GroupingClient(),
		}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			slowLog := slowlog.CreateLogger(logger)
			key := fmt.Sprintf("%s:availability", options.ProviderName)
			slowLog.Start(key)

			providerWithEvents, ok := ctx.MustGet(middleware.ProviderKey).(interfaces.WithListEvents)
			if !ok {
				middleware.HandleError(ctx, http.StatusBadRequest, "Availability not implemented", errors.ErrorNotImplemented)
				return
			}

			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.AvailabilityRequestParams)
			if !ok {
				middleware.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			if params.Hours <= 0 {
				middleware.HandleError(
					ctx,
					http.StatusBadRequest,
					"Hours must be positive",
					schema.NewValidationError("hours must be positive"),
				)
				return
			}

			if params.Date.IsZero() {
				middleware.HandleError(
					ctx,
					http.StatusBadRequest,
					"Date is required",
					schema.NewValidationError("date is required"),
				)
				return
			}

			checker := scheduling.NewProviderChecker(providerWithEvents)

			windows, err := scheduling.Enumerate(ctx.Request.Context(), params.Date.Time, params.Hours, checker, logger)
			if err != nil {
				middleware.HandleError(ctx, http.StatusInternalServerError, "Failed requesting availability", err)
				return
			}

			response := schema.AvailabilityResponse{Times: []schema.SlotTimes{}}
			for _, window := range windows {
				response.Times = append(response.Times, schema.SlotTimes{
					Start: window.Start.Format(schema.DateTimeFormat),
					End:   window.End.Format(schema.DateTimeFormat),
				})
			}

			ctx.JSON(http.StatusOK, response)

			slowLog.Stop(key)
		},
	)

	bookingHandler := func(ctx *gin.Context) {
		providerWithCreateEvent, ok := ctx.MustGet(middleware.ProviderKey).(interfaces.WithCreateEvent)
		if !ok {
			middleware.HandleError(ctx, http.StatusBadRequest, "Booking not implemented", errors.ErrorNotImplemented)
			return
		}

		params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.BookingRequestParams)
		if !ok {
			middleware.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
			return
		}

		logger := ctx.MustGet("logger").(*zerolog.Logger)

		creator := Creator{
			Events:       providerWithCreateEvent,
			Mailer:       options.Mailer,
			Catalog:      options.Catalog,
			OwnerEmail:   options.OwnerEmail,
			BusinessName: options.BusinessName,
		}

		response, err := creator.Create(ctx.Request.Context(), *params, logger)
		if err != nil {
			status := http.StatusInternalServerError
			if schema.KindOf(err) == schema.ValidationError {
				status = http.StatusBadRequest
			}

			middleware.HandleError(ctx, status, "Failed creating booking", err)
			return
		}

		ctx.JSON(http.StatusOK, response)
	}

	// The bare path is kept for the original form clients, the /api one
	// for everyone else. Identical semantics.
	group.POST("/book", middleware.PrepareParams(schema.BookingRequestParams{}), bookingHandler)
	group.POST("/api/book", middleware.PrepareParams(schema.BookingRequestParams{}), bookingHandler)
}
