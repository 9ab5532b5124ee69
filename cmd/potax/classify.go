package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/potax/internal/cli"
	"github.com/Veraticus/potax/internal/common"
	"github.com/Veraticus/potax/internal/export"
	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/viewmodel"
)

func classifyCmd() *cobra.Command {
	var (
		description string
		supplier    string
		exportPath  string
		showRaw     bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one purchase order",
		Long: `Classify one purchase-order description into the L1/L2/L3 taxonomy.

Without --description the description and supplier are read interactively.
The command exits non-zero unless the classification succeeded.`,
		Example: `  potax classify -d "Annual subscription for cloud hosting services" -s "Amazon Web Services"
  potax classify -d "Office chairs" --raw --export po_classification.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			f, settings, err := createFlow()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := !settings.UI.NoColor && !asJSON

			req := flow.Request{Description: description, Supplier: supplier}
			if !cmd.Flags().Changed("description") {
				if _, err := fmt.Fprint(out, cli.RenderHeader(color)); err != nil {
					return fmt.Errorf("failed to write header: %w", err)
				}
				req, err = cli.NewPrompter(cmd.InOrStdin(), out, color).PromptRequest(ctx)
				if err != nil {
					return fmt.Errorf("failed to read request: %w", err)
				}
			}

			outcome := f.Submit(ctx, req)

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				if err := enc.Encode(viewmodel.ToPayload(outcome)); err != nil {
					return fmt.Errorf("failed to write outcome: %w", err)
				}
			} else {
				rendered := cli.RenderOutcome(outcome, cli.RenderOptions{ShowRaw: showRaw, Color: color})
				if _, err := fmt.Fprint(out, rendered); err != nil {
					return fmt.Errorf("failed to write outcome: %w", err)
				}
			}

			if outcome.State != flow.StateSuccess {
				return common.NewUserError(outcome.Message, outcome.Err)
			}

			if exportPath != "" {
				written, err := export.WriteFile(exportPath, outcome)
				if err != nil {
					return fmt.Errorf("failed to export classification: %w", err)
				}
				if !asJSON {
					if _, err := fmt.Fprintln(cmd.ErrOrStderr(), "Saved "+written); err != nil {
						return fmt.Errorf("failed to write export notice: %w", err)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "purchase-order description")
	cmd.Flags().StringVarP(&supplier, "supplier", "s", "", "supplier name (optional)")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "also show the result as indented JSON")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the result to this JSON file ("+export.DefaultFilename+" in a directory)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome as JSON")

	return cmd
}
