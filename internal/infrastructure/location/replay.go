package location

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

// Replay plays back a recorded trace: one JSON object per line with
// latitude/longitude fields. Points closer together than the watch's
// distance threshold are swallowed, mirroring how a real provider only
// emits once the device has moved far enough.
type Replay struct {
	points   []domain.Coordinates
	interval time.Duration
}

// NewReplay loads the trace file. Interval is the simulated time between
// recorded points.
func NewReplay(path string, interval time.Duration) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: trace file %s", domain.ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("replay trace: %w", err)
	}
	defer f.Close()

	var points []domain.Coordinates
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var c domain.Coordinates
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("replay trace: line %d: %w", len(points)+1, err)
		}
		points = append(points, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("replay trace: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("replay trace: %s is empty", path)
	}

	if interval <= 0 {
		interval = time.Second
	}
	return &Replay{points: points, interval: interval}, nil
}

// NewReplayFromPoints builds a Replay from in-memory points, for tests.
func NewReplayFromPoints(points []domain.Coordinates, interval time.Duration) *Replay {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Replay{points: points, interval: interval}
}

func (r *Replay) Current(_ context.Context) (domain.Coordinates, error) {
	return r.points[0], nil
}

func (r *Replay) Watch(ctx context.Context, opts ports.WatchOptions, fn func(domain.Coordinates)) (ports.Subscription, error) {
	sub := newSubscription()
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		last := r.points[0]
		fn(last)

		for _, p := range r.points[1:] {
			select {
			case <-ctx.Done():
				return
			case <-sub.stop:
				return
			case <-ticker.C:
			}
			if DistanceMeters(last, p) < opts.DistanceMeters {
				continue
			}
			last = p
			fn(p)
		}
	}()
	return sub, nil
}
