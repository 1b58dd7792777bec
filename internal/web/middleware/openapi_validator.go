package middleware

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"

	"github.com/holycityautospa/booking-hub/internal/schema"
)

// OpenapiValidator validates incoming requests against the served OpenAPI
// document. Routes the document does not describe pass through untouched,
// as does everything when the document failed to load.
func OpenapiValidator(doc []byte) gin.HandlerFunc {
	router := loadRouter(doc)

	return func(ctx *gin.Context) {
		if router == nil {
			return
		}

		route, pathParams, err := router.FindRoute(ctx.Request)
		if err != nil {
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    ctx.Request,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}

		if err := openapi3filter.ValidateRequest(ctx.Request.Context(), input); err != nil {
			// Document mismatches are client mistakes, so they carry the
			// validation kind rather than the raw filter error.
			HandleError(
				ctx,
				http.StatusBadRequest,
				"Request does not match the API description",
				schema.NewValidationError(err.Error()),
			)
		}
	}
}

func loadRouter(doc []byte) routers.Router {
	if len(doc) == 0 {
		return nil
	}

	loader := openapi3.NewLoader()

	parsed, err := loader.LoadFromData(doc)
	if err != nil {
		return nil
	}

	if err := parsed.Validate(loader.Context); err != nil {
		return nil
	}

	router, err := gorillamux.NewRouter(parsed)
	if err != nil {
		return nil
	}

	return router
}
