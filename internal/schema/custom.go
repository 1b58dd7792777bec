package schema

import "time"

// Hours is a service duration in hours, possibly fractional.
type Hours float64

func (h Hours) Duration() time.Duration {
	return time.Duration(float64(h) * float64(time.Hour))
}
