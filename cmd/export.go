package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veritide/compliance-cli/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a run's transaction ledger to an xlsx workbook",
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

		rep, _, err := st.GetReport(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "export")
		}

		out := exportOut
		if out == "" {
			out = "ledger.xlsx"
		}

		if err := report.ExportLedger(rep, out); err != nil {
			return eris.Wrap(err, "export")
		}

		zap.L().Info("ledger exported",
			zap.String("run_id", args[0]),
			zap.String("path", out),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default ledger.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
