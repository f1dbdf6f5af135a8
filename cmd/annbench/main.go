// Command annbench runs the brute-force baseline over a node and query
// dataset pair and writes the ranked identifiers per query.
//
//	annbench [node-dataset] [query-dataset] [result-output]
//
// All three positional arguments are optional and default to the sample
// data locations.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/annbench"
	"github.com/hupe1980/annbench/blobstore"
	"github.com/hupe1980/annbench/dataset"
)

const (
	defaultNodesPath   = "./testdata/dummy-data.bin"
	defaultQueriesPath = "./testdata/dummy-queries.bin"
	defaultOutputPath  = "./testdata/output.bin"
)

var (
	flagSampleProportion float64
	flagWorkers          int
	flagDimension        int
	flagK                int
	flagVerbose          bool
)

var rootCmd = &cobra.Command{
	Use:   "annbench [node-dataset] [query-dataset] [result-output]",
	Short: "Filtered ANN brute-force baseline",
	Long: `Runs the filtered approximate-nearest-neighbor baseline: loads a node
dataset and a query dataset in the SIGMOD 2024 contest binary format,
scans a deterministic prefix per query, and writes the top-K nearest
identifiers per query.`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		nodesPath := defaultNodesPath
		queriesPath := defaultQueriesPath
		outputPath := defaultOutputPath
		if len(args) > 0 {
			nodesPath = args[0]
		}
		if len(args) > 1 {
			queriesPath = args[1]
		}
		if len(args) > 2 {
			outputPath = args[2]
		}

		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger := annbench.NewTextLogger(level)

		return run(cmd.Context(), logger, nodesPath, queriesPath, outputPath)
	},
}

func run(ctx context.Context, logger *annbench.Logger, nodesPath, queriesPath, outputPath string) error {
	totalStart := time.Now()

	schema := dataset.Schema{Dimension: flagDimension, K: flagK}

	runner, err := annbench.New(schema, func(o *annbench.Options) {
		o.SampleProportion = flagSampleProportion
		o.Workers = flagWorkers
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	nodes, err := loaderFor(logger, nodesPath).Nodes(ctx, filepath.Base(nodesPath), schema)
	if err != nil {
		return err
	}

	queries, err := loaderFor(logger, queriesPath).Queries(ctx, filepath.Base(queriesPath), schema)
	if err != nil {
		return err
	}

	results, err := runner.Run(ctx, nodes, queries)
	if err != nil {
		return err
	}

	if err := loaderFor(logger, outputPath).WriteResults(ctx, filepath.Base(outputPath), results); err != nil {
		return err
	}

	logger.Info("run finished", "total_duration", time.Since(totalStart))
	return nil
}

func loaderFor(logger *annbench.Logger, path string) *annbench.Loader {
	return annbench.NewLoader(blobstore.NewLocalStore(filepath.Dir(path)), func(o *annbench.LoaderOptions) {
		o.Logger = logger
	})
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("run aborted", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Float64Var(&flagSampleProportion, "sample-proportion", annbench.DefaultOptions.SampleProportion, "fraction of the node prefix scanned per query")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 1, "queries processed concurrently")
	rootCmd.Flags().IntVar(&flagDimension, "dimension", dataset.DefaultSchema().Dimension, "vector dimension")
	rootCmd.Flags().IntVar(&flagK, "k", dataset.DefaultSchema().K, "nearest neighbors per query")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}
