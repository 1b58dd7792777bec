package web

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/holycityautospa/booking-hub/internal/booking"
	"github.com/holycityautospa/booking-hub/internal/catalog"
	"github.com/holycityautospa/booking-hub/internal/mail"
	"github.com/holycityautospa/booking-hub/internal/provider/factory"
	"github.com/holycityautospa/booking-hub/internal/tools/redisfactory"
	"github.com/holycityautospa/booking-hub/internal/web/middleware"
)

func SetupRouter(log *zerolog.Logger, redisFactory *redisfactory.Factory) *gin.Engine {
	var (
		startTime       = time.Now()
		openApiLocation = os.Getenv("OPENAPI_LOCATION")
	)

	if openApiLocation == "" {
		openApiLocation = "./api/openapi.json"
	}

	openApiContent, _ := os.ReadFile(openApiLocation)

	router := gin.New()

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router.
		Use(middleware.StartRequest).
		Use(middleware.CorrelationId).
		Use(middleware.RegisterLogger(log)).
		Use(middleware.TraceLog).
		Use(middleware.PanicRecovery).
		Use(Cors(log)).
		Use(middleware.OpenapiValidator(openApiContent))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s Booking API is running.", businessName())
	})

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, string(openApiContent))
	})

	pprof.Register(router)

	booking.RegisterRoutes(
		router,
		factory.NewFactory(redisFactory),
		redisFactory,
		booking.RoutesOptions{
			ProviderName: providerName(),
			Catalog:      catalog.New(),
			Mailer:       mail.NewSmtpSender(mail.ConfigurationFromEnv()),
			OwnerEmail:   os.Getenv("OWNER_EMAIL"),
			BusinessName: businessName(),
		},
	)

	return router
}

func providerName() string {
	name := os.Getenv("CALENDAR_PROVIDER")
	if name == "" {
		name = "google"
	}

	return name
}

func businessName() string {
	name := os.Getenv("BUSINESS_NAME")
	if name == "" {
		name = "Holy City Auto Spa"
	}

	return name
}
