package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tweakgen/tweakgen/pkg/config"
	"github.com/tweakgen/tweakgen/pkg/tweak"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the tweaks that would be applied, without processing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := config.LoadCatalog(cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderCatalog(catalog))
			return nil
		},
	}
}

// renderCatalog lists every macro and its action description, one per
// line, names right-aligned to the longest one.
func renderCatalog(catalog *tweak.Catalog) string {
	names := catalog.Names()

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	nameStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Right)

	var b strings.Builder
	for _, name := range names {
		action, _ := catalog.Resolve(name)
		fmt.Fprintf(&b, "%s: %s\n", nameStyle.Render(name), action.Describe())
	}
	return b.String()
}
