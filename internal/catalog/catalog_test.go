package catalog_test

import (
	"testing"

	"github.com/holycityautospa/booking-hub/internal/catalog"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	table := catalog.New()

	t.Run("should resolve sized durations", func(t *testing.T) {
		tests := []struct {
			name      string
			service   string
			sizeClass int
			expected  schema.Hours
		}{
			{"rejuvenation mid size", "rejuvenation", 2, 5.5},
			{"rejuvenation smallest", "rejuvenation", 0, 4.5},
			{"rejuvenation largest", "rejuvenation", 4, 6.5},
			{"full detail", "full-detail", 1, 3.5},
			{"flat service ignores size", "ceramic-coating", 0, 24},
			{"flat service ignores out-of-range size", "ceramic-coating", 9, 24},
			{"unknown service", "undercoating", 2, catalog.DefaultDuration},
			{"negative size class", "full-detail", -1, catalog.DefaultDuration},
			{"size class too large", "full-detail", 5, catalog.DefaultDuration},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				assert.Equal(t, test.expected, table.Lookup(test.service, test.sizeClass))
			})
		}
	})

	t.Run("sized durations should be non-decreasing", func(t *testing.T) {
		for _, entry := range table.Entries() {
			if len(entry.BySize) == 0 {
				continue
			}

			assert.Len(t, entry.BySize, catalog.SizeClasses, entry.Service)

			for i := 1; i < len(entry.BySize); i++ {
				assert.GreaterOrEqual(t, entry.BySize[i], entry.BySize[i-1], entry.Service)
			}
		}
	})
}
