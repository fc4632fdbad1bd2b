package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/veritide/compliance-cli/internal/model"
	"github.com/veritide/compliance-cli/internal/store"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect investigation run history and stored reports",
}

// -- reports list --

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List investigation runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		customer, _ := cmd.Flags().GetString("customer")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListInvestigations(ctx, store.Filter{
			Status:       model.RunStatus(status),
			CustomerName: customer,
			Limit:        limit,
		})
		if err != nil {
			return eris.Wrap(err, "reports list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No investigations found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- reports show --

var reportsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the stored report for a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")

		rep, doc, err := st.GetReport(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "reports show")
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		_, err = os.Stdout.WriteString(doc)
		return err
	},
}

func init() {
	reportsListCmd.Flags().String("status", "", "filter by run status (queued, searching, found, not_found, failed)")
	reportsListCmd.Flags().String("customer", "", "filter by customer name")
	reportsListCmd.Flags().Int("limit", 50, "max number of runs to display")

	reportsShowCmd.Flags().Bool("json", false, "emit the structured report instead of the markdown document")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}

// formatRunsList writes a tabular list of investigation runs to out.
func formatRunsList(out io.Writer, runs []model.InvestigationRun) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCUSTOMER\tSTATUS\tCREATED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t--------\t------\t-------\t--------")

	for _, r := range runs {
		customer := r.CustomerName
		if len(customer) > 30 {
			customer = customer[:27] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncateID(r.ID),
			customer,
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.UpdatedAt.Sub(r.CreatedAt).Round(time.Second).String(),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
