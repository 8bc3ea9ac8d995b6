package location

import (
	"context"

	"github.com/rekaindo/rekatrack/internal/core/ports"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

// Static reports a fixed position, typically supplied via CLI flags. Its
// watch emits the position once and then stays silent: a stationary device
// never crosses the movement threshold.
type Static struct {
	Coord domain.Coordinates
}

func NewStatic(lat, lng float64) *Static {
	return &Static{Coord: domain.Coordinates{Latitude: lat, Longitude: lng}}
}

func (s *Static) Current(_ context.Context) (domain.Coordinates, error) {
	return s.Coord, nil
}

func (s *Static) Watch(ctx context.Context, _ ports.WatchOptions, fn func(domain.Coordinates)) (ports.Subscription, error) {
	sub := newSubscription()
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-sub.stop:
			return
		default:
			fn(s.Coord)
		}
	}()
	return sub, nil
}
