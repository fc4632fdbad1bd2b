package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veritide/compliance-cli/internal/store"
)

var (
	batchFile  string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run investigations for every customer listed in a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		names, err := readCustomerCSV(batchFile)
		if err != nil {
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

		return processBatch(ctx, st, names, batchLimit, cfg.Batch.MaxConcurrentInvestigations)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "CSV file of customer names (required)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of customers to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

// readCustomerCSV reads customer names from the first column, skipping a
// header row when the first cell looks like one.
func readCustomerCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var names []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "batch: read %s", path)
		}
		if len(rec) == 0 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		if len(names) == 0 && strings.EqualFold(name, "name") {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, eris.Errorf("batch: no customer names in %s", path)
	}
	return names, nil
}

// processBatch runs investigations concurrently, one browser session per
// customer. Individual failures are recorded but do not abort the batch.
func processBatch(ctx context.Context, st store.Store, names []string, limit, concurrency int) error {
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("customers", len(names)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var found, notFound, failed atomic.Int64

	for _, name := range names {
		g.Go(func() error {
			log := zap.L().With(zap.String("customer", name))

			runner, cleanup, err := newRunner(st)
			if err != nil {
				failed.Add(1)
				log.Error("investigation setup failed", zap.Error(err))
				return nil
			}
			defer cleanup()

			rep, err := runner.Run(gctx, name)
			if err != nil {
				failed.Add(1)
				log.Error("investigation failed", zap.Error(err))
				return nil
			}

			if rep.Record != nil && rep.Record.Personal.Name != "" {
				found.Add(1)
			} else {
				notFound.Add(1)
			}
			log.Info("investigation complete",
				zap.String("risk_level", rep.RiskLevel),
				zap.Int("findings", len(rep.KeyFindings)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("found", found.Load()),
		zap.Int64("not_found", notFound.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
