package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/potax/internal/batch"
	"github.com/Veraticus/potax/internal/common"
)

func batchCmd() *cobra.Command {
	var (
		outPath     string
		noProgress  bool
		failOnError bool
	)

	cmd := &cobra.Command{
		Use:   "batch FILE.csv",
		Short: "Classify every purchase order in a CSV file",
		Long: `Classify each row of a CSV file with a "description" column and an
optional "supplier" column. Rows are submitted one at a time and written as
JSON lines with the row number, state, levels, raw model output and message.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer func() {
				if closeErr := in.Close(); closeErr != nil {
					slog.Warn("Failed to close CSV file", "error", closeErr)
				}
			}()

			rows, err := batch.ReadRows(in)
			if err != nil {
				return err
			}

			f, _, err := createFlow()
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() {
					if closeErr := file.Close(); closeErr != nil {
						slog.Warn("Failed to close output file", "error", closeErr)
					}
				}()
				out = file
			}

			opts := []batch.Option{batch.WithLogger(slog.Default())}
			if !noProgress {
				opts = append(opts, batch.WithProgress(cmd.ErrOrStderr()))
			}

			summary, err := batch.NewRunner(f, opts...).Run(ctx, rows, out)
			if _, printErr := fmt.Fprintln(cmd.ErrOrStderr(), summary.String()); printErr != nil {
				slog.Warn("Failed to write batch summary", "error", printErr)
			}
			if err != nil {
				return err
			}

			if failOnError && summary.Failed() > 0 {
				return common.NewUserError(fmt.Sprintf("%d of %d rows were not classified", summary.Failed(), summary.Total), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write JSON lines to this file instead of stdout")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the progress bar")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any row is not a success")

	return cmd
}
