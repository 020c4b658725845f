package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estimator/internal/service"
)

// createCleanCmd creates the command that writes the training feature table
func createCleanCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the stored dataset and write it as CSV",
		Long:  `Runs the sanitizer over the stored dataset and writes every surviving row with its quality level, warning and derived features`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			export := func(w io.Writer) (int, error) {
				return a.dataset.Export(cmd.Context(), w)
			}
			var n int
			if out == "-" {
				n, err = export(cmd.OutOrStdout())
			} else {
				n, err = writeFile(out, export)
			}
			if err != nil {
				return err
			}
			a.logger.Info("Cleaned dataset written", zap.String("out", out), zap.Int("rows", n))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "cleaned.csv", "output file, - for stdout")
	return cmd
}

// writeFile runs write against a new file at path. The file is removed
// when writing or closing fails.
func writeFile(path string, write func(io.Writer) (int, error)) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			return 0, errors.Join(err, rerr)
		}
		return 0, err
	}
	return n, nil
}

// createStatsCmd creates the command that prints dataset statistics
func createStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print statistics of the cleaned dataset as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := a.dataset.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
}

// createImportCmd creates the command that loads raw rows from CSV
func createImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import [filename]",
		Short: "Import raw listings from a CSV file",
		Long:  `Appends rows to the stored dataset. Columns are matched by header name; rows are stored as-is and cleaned when read`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			n, err := a.dataset.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows\n", n)
			return nil
		},
	}
}

// createPruneCmd creates the command that trims the prediction history
func createPruneCmd(configPath *string) *cobra.Command {
	var (
		count  int
		newest bool
	)
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete the oldest (or newest) stored predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			estimator := service.NewEstimatorService(a.repo, a.dataset, nil, a.cfg.History.MaxLimit, a.logger)
			n, err := estimator.DeletePredictions(cmd.Context(), count, newest)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d predictions\n", n)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of predictions to delete")
	cmd.Flags().BoolVar(&newest, "newest", false, "delete the newest predictions instead of the oldest")
	_ = cmd.MarkFlagRequired("count")
	return cmd
}
