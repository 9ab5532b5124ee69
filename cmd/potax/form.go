package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/tui"
	"github.com/Veraticus/potax/internal/tui/themes"
)

func formCmd() *cobra.Command {
	var (
		description string
		supplier    string
		theme       string
	)

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Open the interactive classification form",
		Long: `Open a terminal form with a description area and a supplier field.

Keys: Tab moves between fields, Ctrl+S classifies, Ctrl+T toggles the raw
JSON view, Ctrl+E exports the result, Ctrl+R resets and Esc quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, settings, err := createFlow()
			if err != nil {
				return err
			}

			if theme == "" {
				theme = settings.UI.Theme
			}
			if !slices.Contains(themes.Names(), theme) {
				return fmt.Errorf("unknown theme %q (available: %s)", theme, strings.Join(themes.Names(), ", "))
			}

			_, err = tui.Run(cmd.Context(),
				tui.WithSubmitter(f),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithExportPath(settings.ExportPath),
				tui.WithInitialRequest(flow.Request{Description: description, Supplier: supplier}),
			)
			return err
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "prefill the description")
	cmd.Flags().StringVarP(&supplier, "supplier", "s", "", "prefill the supplier")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(themes.Names(), ", ")+")")

	return cmd
}
