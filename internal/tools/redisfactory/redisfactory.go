package redisfactory

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// One client per concern so a busy availability-scan cache cannot starve
// the grouping locks. Both URIs may point at the same instance.

type Factory struct {
	groupingCache  *redis.Client
	responsesCache *redis.Client
}

func New() *Factory {
	return &Factory{
		groupingCache:  clientFor("GROUPING_REDIS_URI"),
		responsesCache: clientFor("RESPONSES_CACHE_REDIS_URI"),
	}
}

func clientFor(envKey string) *redis.Client {
	opt, err := redis.ParseURL(os.Getenv(envKey))
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return redis.NewClient(opt)
}

func (f *Factory) GroupingClient() *redis.Client {
	return f.groupingCache
}

func (f *Factory) ResponsesCacheClient() *redis.Client {
	return f.responsesCache
}

// Close releases both connections. Called once on shutdown.
func (f *Factory) Close() error {
	if err := f.groupingCache.Close(); err != nil {
		return err
	}

	return f.responsesCache.Close()
}
