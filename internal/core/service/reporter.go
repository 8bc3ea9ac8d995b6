package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
	"github.com/rekaindo/rekatrack/internal/metrics"
)

// DefaultDistanceMeters is the movement threshold between emitted samples.
const DefaultDistanceMeters = 100

// Reporter is the live location reporter ("tracer"). It runs only while a
// document is in transit and its observer stays attached: a movement
// threshold watch feeds samples to the gateway, each submission retried per
// the policy and then dropped silently, since reporting failures must never
// interrupt a delivery. Stop is a mandatory resource-release contract.
type Reporter struct {
	gw     ports.Gateway
	loc    ports.LocationProvider
	policy RetryPolicy
	sleep  Sleeper
	dist   float64
	log    zerolog.Logger

	mu    sync.Mutex
	sub   ports.Subscription
	docID int
}

// ReporterOption tunes a Reporter.
type ReporterOption func(*Reporter)

// WithRetryPolicy overrides the per-sample retry policy.
func WithRetryPolicy(p RetryPolicy) ReporterOption {
	return func(r *Reporter) { r.policy = p }
}

// WithSleeper injects the inter-retry wait, for tests without real timers.
func WithSleeper(s Sleeper) ReporterOption {
	return func(r *Reporter) { r.sleep = s }
}

// WithDistanceMeters overrides the movement threshold.
func WithDistanceMeters(m float64) ReporterOption {
	return func(r *Reporter) { r.dist = m }
}

func NewReporter(gw ports.Gateway, loc ports.LocationProvider, log zerolog.Logger, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		gw:     gw,
		loc:    loc,
		policy: DefaultRetryPolicy,
		sleep:  ContextSleep,
		dist:   DefaultDistanceMeters,
		log:    log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins watching the device location for the given in-transit
// document. Starting an already-running reporter is rejected.
func (r *Reporter) Start(ctx context.Context, documentID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub != nil {
		return domain.ErrInvalidFlowState
	}

	sub, err := r.loc.Watch(ctx, ports.WatchOptions{DistanceMeters: r.dist}, func(c domain.Coordinates) {
		r.submit(ctx, documentID, c)
	})
	if err != nil {
		return err
	}
	r.sub = sub
	r.docID = documentID
	r.log.Info().Int("document_id", documentID).Float64("distance_m", r.dist).Msg("tracer watch started")
	return nil
}

// Stop tears down the watch. Safe to call twice; must be called when the
// observing screen loses focus or unmounts.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub == nil {
		return
	}
	r.sub.Stop()
	r.sub = nil
	r.log.Info().Int("document_id", r.docID).Msg("tracer watch stopped")
}

// Running reports whether a watch is active.
func (r *Reporter) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub != nil
}

// submit reports one sample, retrying per the policy and giving up silently
// after exhaustion. Background tracking is best-effort: the only trace of a
// dropped sample is a log line and a counter.
func (r *Reporter) submit(ctx context.Context, documentID int, c domain.Coordinates) {
	attempt := 0
	err := r.policy.Run(ctx, r.sleep, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.SampleRetriesTotal.Inc()
		}
		return sendLocation(ctx, r.gw, documentID, c)
	})
	if err != nil {
		metrics.SamplesDroppedTotal.Inc()
		r.log.Warn().Err(err).
			Int("document_id", documentID).
			Int("attempts", attempt).
			Msg("location sample dropped")
		return
	}

	metrics.SamplesSentTotal.Inc()
	r.log.Debug().
		Int("document_id", documentID).
		Float64("latitude", c.Latitude).
		Float64("longitude", c.Longitude).
		Msg("location sample sent")
}
