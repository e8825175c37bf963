package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"goimpute/adapters/excel"
	"goimpute/adapters/knn"
	"goimpute/adapters/postgres"
	"goimpute/adapters/stattest"
	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/internal/analysis"
	"goimpute/internal/config"
	"goimpute/internal/impute"
	"goimpute/internal/ingest"
	"goimpute/internal/logging"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "goimpute",
		Short:         "Analyze missingness patterns in tabular data and impute accordingly",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newImputeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired pipeline for one process invocation.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	analyzer *analysis.Analyzer
	engine   *impute.Engine
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.ParseLevel(cfg.LogLevel))
	tests := stattest.NewSuite()
	analyzer := analysis.NewAnalyzer(tests, cfg.Analysis.SignificanceLevel)
	engine := impute.NewEngine(analyzer.Profiler, knn.NewImputer(), cfg.Analysis.KNNNeighbors)

	return &app{cfg: cfg, log: log, analyzer: analyzer, engine: engine}, nil
}

// loadTable resolves a source argument: "sql:<query>" reads through the
// postgres adapter, .xlsx through excelize, anything else as CSV.
func (a *app) loadTable(ctx context.Context, source string) (*table.Table, error) {
	if query, ok := strings.CutPrefix(source, "sql:"); ok {
		return a.loadQuery(ctx, query)
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".xlsx":
		return excel.NewReader(a.log).ReadFile(source)
	default:
		return ingest.NewReader(a.log).ReadFile(source)
	}
}

func (a *app) loadQuery(ctx context.Context, query string) (*table.Table, error) {
	if a.cfg.Database.URL == "" {
		return nil, fmt.Errorf("sql: source requires DATABASE_URL to be set")
	}
	db, err := postgres.Connect(ctx, a.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return postgres.NewTableReader(db, a.log).ReadTable(ctx, query)
}

func newProfileCmd() *cobra.Command {
	var columns []string

	cmd := &cobra.Command{
		Use:   "profile <source> [source...]",
		Short: "Report marker verdicts, MCAR results, and distribution shapes per column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			// One table per goroutine; the analyzer is read-only and
			// safe to share.
			reports := make([]string, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, source := range args {
				i, source := i, source
				g.Go(func() error {
					tbl, err := a.loadTable(ctx, source)
					if err != nil {
						return err
					}
					reports[i] = a.profileReport(tbl, source, columns)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, report := range reports {
				fmt.Print(report)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to profile (default: all)")
	return cmd
}

func (a *app) profileReport(tbl *table.Table, path string, columns []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "== %s (%d rows, %d columns, table %s)\n",
		path, tbl.NumRows(), tbl.NumCols(), tbl.Source().ID)

	verdicts := a.analyzer.Classifier.Classify(tbl, columns...)
	profiles := a.analyzer.Profiler.Profile(tbl, columns...)

	names := make([]string, 0, len(verdicts))
	for name := range verdicts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "  %-20s markers=%s", name, verdicts[name])
		if verdicts[name] == missingness.ColumnNotFound {
			b.WriteString("\n")
			continue
		}

		if mcar, err := a.analyzer.MCAR.TestMCAR(tbl, name); err == nil {
			fmt.Fprintf(&b, " mcar=%t(p=%.4f,tests=%d)", mcar.IsMCAR, mcar.MinPValue, mcar.TestsRun)
		}
		if dist, err := a.analyzer.Distribution.AnalyzeDistribution(tbl, name); err == nil {
			fmt.Fprintf(&b, " shape=%s", dist.Shape)
			if dist.Numeric && dist.Shape != missingness.ShapeInsufficientData {
				fmt.Fprintf(&b, "(skew=%.3f,normal_p=%.4f)", dist.Skewness, dist.NormalityPValue)
			}
		}
		if profile, ok := profiles[name]; ok {
			fmt.Fprintf(&b, " auto[mcar=%s skewed=%s]", flag(profile.MCAR), flag(profile.Skewed))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func newImputeCmd() *cobra.Command {
	var (
		strategyName string
		columns      []string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "impute <source>",
		Short: "Apply an imputation strategy and write the result as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			strategy, err := missingness.ParseStrategy(strategyName)
			if err != nil {
				return fmt.Errorf("%w (choose from %v)", err, missingness.Strategies())
			}

			tbl, err := a.loadTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			before := tbl.NumRows()

			result, err := a.engine.Impute(tbl, strategy, columns...)
			if err != nil {
				return err
			}

			a.log.Info("strategy=%s outcome=%s in_place=%t rows %d -> %d",
				strategy, result.Outcome, result.InPlace, before, result.Table.NumRows())

			if output == "" {
				return ingest.WriteCSV(result.Table, os.Stdout)
			}
			return ingest.WriteCSVFile(result.Table, output)
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", string(missingness.StrategyAuto), "imputation strategy")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to impute (default: all)")
	cmd.Flags().StringVar(&output, "output", "", "output CSV path (default: stdout)")
	return cmd
}
