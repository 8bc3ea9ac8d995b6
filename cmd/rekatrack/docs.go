package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/service"
)

func newDocsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Browse the travel document directory",
	}
	cmd.AddCommand(
		newDocsListCmd(a),
		newDocsStatsCmd(a),
		newDocsLookupCmd(a),
		newDocsDetailCmd(a),
		newDocsConfirmationCmd(a),
	)
	return cmd
}

// statusFromFlag maps the CLI-friendly status names onto wire statuses.
func statusFromFlag(s string) (domain.DocumentStatus, error) {
	switch s {
	case "":
		return "", nil
	case "not-sent":
		return domain.StatusNotSent, nil
	case "in-transit":
		return domain.StatusInTransit, nil
	case "delivered":
		return domain.StatusDelivered, nil
	default:
		return "", fmt.Errorf("unknown status %q (want not-sent, in-transit or delivered)", s)
	}
}

func newDocsListCmd(a *app) *cobra.Command {
	var query, status string
	var recent int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List travel documents, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			dir := service.NewDirectoryService(a.client, a.log)
			docs, err := dir.ListAll(ctx)
			if err != nil {
				return err
			}

			docs = service.Search(query, docs)
			if wanted, err := statusFromFlag(status); err != nil {
				return err
			} else if wanted != "" {
				docs = service.FilterByStatus(wanted, docs)
			}
			if recent > 0 {
				docs = service.Recent(docs, recent)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNUMBER\tDATE\tPROJECT\tDESTINATION\tSTATUS")
			for _, d := range docs {
				date := ""
				if !d.IssueDate.IsZero() {
					date = d.IssueDate.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					d.ID, d.DocumentNumber, date, d.Project, d.Destination, d.Status.Normalized())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "filter by project or document number (substring)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: not-sent, in-transit, delivered")
	cmd.Flags().IntVar(&recent, "recent", 0, "show only the n newest documents")
	return cmd
}

func newDocsStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-status document counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			dir := service.NewDirectoryService(a.client, a.log)
			docs, err := dir.ListAll(ctx)
			if err != nil {
				return err
			}

			stats := service.ComputeStats(docs)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "not sent:   %d\n", stats.NotSent)
			fmt.Fprintf(out, "in transit: %d\n", stats.InTransit)
			fmt.Fprintf(out, "delivered:  %d\n", stats.Delivered)
			fmt.Fprintf(out, "total:      %d\n", stats.Total)
			return nil
		},
	}
}

func newDocsLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <document-number>",
		Short: "Find a document by its number (exact match)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			dir := service.NewDirectoryService(a.client, a.log)
			docs, err := dir.ListAll(ctx)
			if err != nil {
				return err
			}

			doc, err := service.FindByNumber(args[0], docs)
			if err != nil {
				return err
			}
			printDocument(cmd, doc)
			return nil
		},
	}
}

func newDocsDetailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <id>",
		Short: "Show one travel document with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("document id must be a number")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			dir := service.NewDirectoryService(a.client, a.log)
			doc, err := dir.Detail(ctx, id)
			if err != nil {
				return err
			}
			printDocument(cmd, doc)
			return nil
		},
	}
}

func newDocsConfirmationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confirmation <id>",
		Short: "Show the proof-of-delivery record for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("document id must be a number")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			dir := service.NewDirectoryService(a.client, a.log)
			conf, err := dir.Confirmation(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "receiver:    %s\n", conf.ReceiverName)
			fmt.Fprintf(out, "received at: %s\n", conf.ReceivedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "photo:       %s\n", conf.PhotoPath)
			if conf.Note != "" {
				fmt.Fprintf(out, "note:        %s\n", conf.Note)
			}
			return nil
		},
	}
}

func printDocument(cmd *cobra.Command, d domain.TravelDocument) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "number:      %s\n", d.DocumentNumber)
	if !d.IssueDate.IsZero() {
		fmt.Fprintf(out, "date:        %s\n", d.IssueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(out, "project:     %s\n", d.Project)
	fmt.Fprintf(out, "destination: %s\n", d.Destination)
	fmt.Fprintf(out, "status:      %s\n", d.Status.Normalized())
	if d.PONumber != "" {
		fmt.Fprintf(out, "po number:   %s\n", d.PONumber)
	}
	if len(d.Items) > 0 {
		fmt.Fprintln(out, "items:")
		for _, it := range d.Items {
			unit := ""
			if it.Unit != nil {
				unit = it.Unit.Name
			}
			fmt.Fprintf(out, "  %-10s %-30s %s %s\n", it.ItemCode, it.ItemName, it.QtySend, unit)
		}
	}
}
