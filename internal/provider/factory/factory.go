package factory

import (
	"fmt"

	"github.com/holycityautospa/booking-hub/internal/provider/implementations/caldavcal"
	"github.com/holycityautospa/booking-hub/internal/provider/implementations/googlecal"
	"github.com/holycityautospa/booking-hub/internal/tools/redisfactory"
)

type Factory struct {
	redisFactory *redisfactory.Factory
	providers    map[string]any
}

func NewFactory(redisFactory *redisfactory.Factory) *Factory {
	return &Factory{
		redisFactory: redisFactory,
		providers:    make(map[string]any),
	}
}

// GetProvider returns the calendar provider for a configured name,
// constructing it on first use. The name is fixed at startup via
// CALENDAR_PROVIDER; implementations are alternatives, never combined.
func (f *Factory) GetProvider(name string) (any, error) {
	_, ok := f.providers[name]

	if !ok {
		switch name {

		// Register all providers here
		case "google":
			f.providers[name] = googlecal.New(googlecal.ConfigurationFromEnv(), f.redisFactory.ResponsesCacheClient())
		case "caldav":
			f.providers[name] = caldavcal.New(caldavcal.ConfigurationFromEnv())
		default:
			return nil, fmt.Errorf("calendar provider %s not found", name)
		}
	}

	return f.providers[name], nil
}
