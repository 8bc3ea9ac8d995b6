package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rekaindo/rekatrack/internal/core/ports"
	"github.com/rekaindo/rekatrack/internal/infrastructure/api"
	"github.com/rekaindo/rekatrack/internal/infrastructure/location"
	"github.com/rekaindo/rekatrack/internal/infrastructure/store"
	"github.com/rekaindo/rekatrack/internal/pkg/config"
	"github.com/rekaindo/rekatrack/pkg/logger"
)

// app carries the wired dependencies shared by every subcommand. It is
// populated in the root command's PersistentPreRunE so each subcommand's
// RunE can assume a ready store and gateway.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *store.BadgerStore
	client *api.Client

	// location source flags, consumed by scan/track/complete
	lat   float64
	lng   float64
	trace string
}

// provider picks the location source: a replay trace when --trace is given,
// otherwise a fixed coordinate from --lat/--lng.
func (a *app) provider() (ports.LocationProvider, error) {
	if a.trace != "" {
		return location.NewReplay(a.trace, a.cfg.Tracer.ReplayInterval)
	}
	return location.NewStatic(a.lat, a.lng), nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "rekatrack",
		Short:         "Delivery tracking client for RekaTrack travel documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			a.cfg = config.Load()
			a.log = logger.Init(logger.Options{
				Level:  a.cfg.LogLevel,
				Pretty: a.cfg.LogPretty,
			})

			s, err := store.Open(a.cfg.SessionDir)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			a.store = s

			a.client = api.NewClient(a.cfg.APIBaseURL, a.store, a.log,
				api.WithTimeout(a.cfg.RequestTimeout))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.store != nil {
				return a.store.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().Float64Var(&a.lat, "lat", -6.2, "device latitude when no trace file is given")
	root.PersistentFlags().Float64Var(&a.lng, "lng", 106.8, "device longitude when no trace file is given")
	root.PersistentFlags().StringVar(&a.trace, "trace", "", "NDJSON trace file to replay as device movement")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newProfileCmd(a),
		newDocsCmd(a),
		newScanCmd(a),
		newTrackCmd(a),
		newCompleteCmd(a),
	)
	return root
}

// ctxTimeout is a convenience bound for one-shot commands so a hung network
// call cannot outlive the user's patience. Long-running commands manage
// their own lifetime.
const ctxTimeout = 30 * time.Second
