package ports

import (
	"context"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

// WatchOptions tunes a continuous location watch. Samples are emitted when
// the device has moved past DistanceMeters since the last emission, not on a
// clock.
type WatchOptions struct {
	DistanceMeters float64
}

// Subscription is a cancelable location watch. Stop must be called on flow
// teardown; a leaked watch drains battery and keeps emitting network traffic
// after the user has navigated away.
type Subscription interface {
	Stop()
}

// LocationProvider abstracts the OS geolocation capability.
type LocationProvider interface {
	// Current acquires a single fix. It fails with
	// domain.ErrPermissionDenied when location access is refused.
	Current(ctx context.Context) (domain.Coordinates, error)

	// Watch starts a continuous movement-threshold watch, invoking fn for
	// each emitted sample until the subscription is stopped or ctx is done.
	Watch(ctx context.Context, opts WatchOptions, fn func(domain.Coordinates)) (Subscription, error)
}
