package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type factory interface {
	GetProvider(string) (any, error)
}

const (
	ProviderKey     string = "provider"
	ProviderNameKey string = "providerName"
)

// PrepareProvider resolves the configured calendar provider once per
// request. The name is fixed at startup, so a resolution failure means a
// misconfigured deployment rather than a bad request.
func PrepareProvider(f factory, name string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		provider, err := f.GetProvider(name)
		if err != nil {
			HandleError(ctx, http.StatusInternalServerError, "Failed to find calendar provider", err)
			return
		}

		ctx.Set(ProviderKey, provider)
		ctx.Set(ProviderNameKey, name)
	}
}
