package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rekaindo/rekatrack/internal/core/service"
)

func newTrackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "track <id>",
		Short: "Report live location for an in-transit document until interrupted",
		Long: `Watch the location source and send a sample to the backend every time
the device moves past the distance threshold. Failed samples are retried
and then dropped; tracking never aborts a delivery. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("document id must be a number")
			}

			loc, err := a.provider()
			if err != nil {
				return err
			}

			reporter := service.NewReporter(a.client, loc, a.log,
				service.WithDistanceMeters(a.cfg.Tracer.DistanceMeters),
				service.WithRetryPolicy(service.RetryPolicy{
					MaxAttempts: a.cfg.Tracer.RetryAttempts,
					Delay:       a.cfg.Tracer.RetryDelay,
				}),
			)

			// Expose the sample counters while the tracer runs.
			metricsSrv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: promhttp.Handler()}
			go func() {
				if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.log.Warn().Err(err).Msg("metrics endpoint stopped")
				}
			}()
			defer metricsSrv.Close()

			ctx := cmd.Context()
			if err := reporter.Start(ctx, id); err != nil {
				return err
			}
			defer reporter.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "tracking document %d, press Ctrl-C to stop\n", id)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case <-ctx.Done():
			}

			fmt.Fprintln(cmd.OutOrStdout(), "tracking stopped")
			return nil
		},
	}
}
