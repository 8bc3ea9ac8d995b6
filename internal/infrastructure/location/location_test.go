package location

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coordinates
		want float64
		tol  float64
	}{
		{
			name: "same point",
			a:    domain.Coordinates{Latitude: -6.2, Longitude: 106.8},
			b:    domain.Coordinates{Latitude: -6.2, Longitude: 106.8},
			want: 0, tol: 0.001,
		},
		{
			// One degree of latitude is about 111 km everywhere.
			name: "one degree latitude",
			a:    domain.Coordinates{Latitude: 0, Longitude: 0},
			b:    domain.Coordinates{Latitude: 1, Longitude: 0},
			want: 111195, tol: 200,
		},
		{
			// ~0.001 deg latitude is roughly 111 m, just over the default
			// movement threshold.
			name: "small step near jakarta",
			a:    domain.Coordinates{Latitude: -6.2, Longitude: 106.8},
			b:    domain.Coordinates{Latitude: -6.201, Longitude: 106.8},
			want: 111, tol: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.a, tt.b)
			if diff := got - tt.want; diff < -tt.tol || diff > tt.tol {
				t.Fatalf("DistanceMeters = %.1f, want %.1f +/- %.1f", got, tt.want, tt.tol)
			}
		})
	}
}

func collect(t *testing.T, p ports.LocationProvider, threshold float64, wantEmits int) []domain.Coordinates {
	t.Helper()

	var mu sync.Mutex
	var got []domain.Coordinates
	done := make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub, err := p.Watch(ctx, ports.WatchOptions{DistanceMeters: threshold}, func(c domain.Coordinates) {
		mu.Lock()
		got = append(got, c)
		n := len(got)
		mu.Unlock()
		if n == wantEmits {
			close(done)
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer sub.Stop()

	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		defer mu.Unlock()
		t.Fatalf("timed out with %d emissions, want %d", len(got), wantEmits)
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]domain.Coordinates, len(got))
	copy(out, got)
	return out
}

func TestStaticEmitsOnce(t *testing.T) {
	p := NewStatic(-6.2, 106.8)

	coord, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if coord.Latitude != -6.2 || coord.Longitude != 106.8 {
		t.Fatalf("coord = %+v", coord)
	}

	got := collect(t, p, 100, 1)
	if got[0] != coord {
		t.Fatalf("emitted %+v, want %+v", got[0], coord)
	}
}

func TestReplaySwallowsPointsUnderThreshold(t *testing.T) {
	start := domain.Coordinates{Latitude: -6.2, Longitude: 106.8}
	nearby := domain.Coordinates{Latitude: -6.2001, Longitude: 106.8} // ~11 m
	far := domain.Coordinates{Latitude: -6.202, Longitude: 106.8}     // ~222 m
	farther := domain.Coordinates{Latitude: -6.204, Longitude: 106.8} // ~222 m past far

	p := NewReplayFromPoints([]domain.Coordinates{start, nearby, far, farther}, time.Millisecond)
	got := collect(t, p, 100, 3)

	want := []domain.Coordinates{start, far, farther}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("emission %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReplayCurrentIsFirstPoint(t *testing.T) {
	first := domain.Coordinates{Latitude: -6.2, Longitude: 106.8}
	p := NewReplayFromPoints([]domain.Coordinates{first, {Latitude: -6.3, Longitude: 106.9}}, time.Millisecond)

	got, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != first {
		t.Fatalf("Current = %+v, want %+v", got, first)
	}
}

func TestSubscriptionStopEndsWatch(t *testing.T) {
	points := make([]domain.Coordinates, 100)
	for i := range points {
		points[i] = domain.Coordinates{Latitude: float64(i), Longitude: 0}
	}
	p := NewReplayFromPoints(points, time.Millisecond)

	var mu sync.Mutex
	count := 0
	sub, err := p.Watch(context.Background(), ports.WatchOptions{DistanceMeters: 1}, func(domain.Coordinates) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	sub.Stop()
	sub.Stop() // double stop must not panic

	mu.Lock()
	after := count
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	final := count
	mu.Unlock()

	// At most one in-flight emission may land after Stop.
	if final > after+1 {
		t.Fatalf("emissions kept arriving after Stop: %d then %d", after, final)
	}
}
