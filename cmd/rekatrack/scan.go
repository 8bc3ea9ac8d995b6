package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rekaindo/rekatrack/internal/core/service"
)

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <payload>",
		Short: "Decode a scanned code and activate tracking for the document",
		Long: `Decode a scanned QR payload (SJNID:<id>), load the document and submit
the first location sample, moving the document to in transit. Documents
already in transit are recognised without a second activation; delivered
documents are reported as such.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			loc, err := a.provider()
			if err != nil {
				return err
			}

			flow := service.NewScanFlow(a.client, loc, a.log)
			if err := flow.Decode(args[0]); err != nil {
				return err
			}
			if err := flow.LoadDetail(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch flow.State() {
			case service.StateAlreadyDelivered:
				fmt.Fprintf(out, "document %s is already delivered\n", flow.Document().DocumentNumber)
				return nil
			case service.StateActivated:
				fmt.Fprintf(out, "document %s is already in transit, tracking resumed\n", flow.Document().DocumentNumber)
				return nil
			}

			if err := flow.Activate(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "document %s activated, now in transit\n", flow.Document().DocumentNumber)
			fmt.Fprintf(out, "run \"rekatrack track %d\" to keep reporting location\n", flow.DocumentID())
			return nil
		},
	}
}
