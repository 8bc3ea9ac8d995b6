// Package location provides LocationProvider implementations that stand in
// for the OS geolocation capability in a headless environment.
package location

import (
	"math"
	"sync"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle distance between two points.
// Used to honour the movement threshold between emitted samples.
func DistanceMeters(a, b domain.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// subscription is a stop-once handle shared by the providers in this package.
type subscription struct {
	once sync.Once
	stop chan struct{}
}

func newSubscription() *subscription {
	return &subscription{stop: make(chan struct{})}
}

func (s *subscription) Stop() {
	s.once.Do(func() { close(s.stop) })
}
