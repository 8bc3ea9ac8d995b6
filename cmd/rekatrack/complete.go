package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rekaindo/rekatrack/internal/core/service"
	"github.com/rekaindo/rekatrack/internal/infrastructure/photo"
)

func newCompleteCmd(a *app) *cobra.Command {
	var receiver, note, photoPath, receivedAt string

	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a delivery with receiver, proof photo and final location",
		Long: `Finish an in-transit delivery: upload the proof photo, then post the
confirmation together with the final location in one atomic request. If
the confirmation step fails the uploaded photo is reused on retry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("document id must be a number")
			}

			form := service.CompletionForm{ReceiverName: receiver, Note: note}
			if receivedAt != "" {
				t, err := time.Parse(time.RFC3339, receivedAt)
				if err != nil {
					return fmt.Errorf("--received-at must be RFC3339, e.g. 2026-08-28T15:04:05Z")
				}
				form.ReceivedAt = t
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			loc, err := a.provider()
			if err != nil {
				return err
			}

			p, err := photo.NewFileSource(photoPath).Pick(ctx)
			if err != nil {
				return err
			}

			flow := service.NewCompletionFlow(id, a.client, loc, a.log)
			if err := flow.AttachPhoto(p); err != nil {
				return err
			}
			if err := flow.Submit(ctx, form); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "document %d delivered to %s\n", id, receiver)
			return nil
		},
	}
	cmd.Flags().StringVar(&receiver, "receiver", "", "name of the person who received the goods")
	cmd.Flags().StringVar(&note, "note", "", "optional delivery note")
	cmd.Flags().StringVar(&photoPath, "photo", "", "path to the proof-of-delivery photo")
	cmd.Flags().StringVar(&receivedAt, "received-at", "", "delivery timestamp (RFC3339), defaults to now")
	_ = cmd.MarkFlagRequired("receiver")
	_ = cmd.MarkFlagRequired("photo")
	return cmd
}
