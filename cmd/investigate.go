package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veritide/compliance-cli/internal/investigate"
	"github.com/veritide/compliance-cli/internal/report"
)

var (
	investigateCustomer   string
	investigateJSON       bool
	investigateScreenshot string
)

var investigateCmd = &cobra.Command{
	Use:   "investigate",
	Short: "Run a compliance investigation for a single customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("investigate"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		assembler, err := newAssembler()
		if err != nil {
			return err
		}
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		runner := investigate.NewRunner(session, assembler, newResearcher(), st)
		rep, runErr := runner.Run(ctx, investigateCustomer)

		// Capture the final page state either way; on failure it is the
		// audit trail for what the portal was showing.
		if investigateScreenshot != "" {
			if err := session.Screenshot(investigateScreenshot); err != nil {
				zap.L().Warn("screenshot failed", zap.Error(err))
			}
		}

		if runErr != nil {
			return eris.Wrap(runErr, "investigation")
		}

		zap.L().Info("investigation complete",
			zap.String("customer", investigateCustomer),
			zap.String("risk_level", rep.RiskLevel),
			zap.Int("findings", len(rep.KeyFindings)),
		)

		if investigateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		_, err = os.Stdout.WriteString(report.FormatMarkdown(rep))
		return err
	},
}

func init() {
	investigateCmd.Flags().StringVar(&investigateCustomer, "customer", "", "customer name to investigate (required)")
	investigateCmd.Flags().BoolVar(&investigateJSON, "json", false, "emit raw report JSON instead of markdown")
	investigateCmd.Flags().StringVar(&investigateScreenshot, "screenshot", "", "write a full-page screenshot of the final page state to this path")
	_ = investigateCmd.MarkFlagRequired("customer")
	rootCmd.AddCommand(investigateCmd)
}
