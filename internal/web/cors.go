package web

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Cors allows only the origins named in ALLOWED_ORIGINS (comma separated).
// An empty list means same-origin use only; blocked origins are logged so
// a misconfigured frontend shows up in the server log, not just the
// browser console.
func Cors(log *zerolog.Logger) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}

	configuration := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "x-correlation-id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			if allowed[origin] {
				return true
			}

			log.Warn().Str("origin", origin).Msg("Blocked by CORS policy")

			return false
		},
	}

	return cors.New(configuration)
}
