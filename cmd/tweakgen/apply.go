package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tweakgen/tweakgen/pkg/config"
	"github.com/tweakgen/tweakgen/pkg/engine"
)

func newApplyCmd() *cobra.Command {
	var templateDir string
	var destDir string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Process every template into the destination directory",
		Long: `Walk the template directory, substitute every configured macro and
write the results into the destination directory, mirroring the
relative paths. The run aborts on the first file that cannot be
processed; macros without a tweak table entry keep their defaults and
only produce warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := config.LoadCatalog(cfgFile)
			if err != nil {
				return err
			}

			proc := engine.New(catalog, cmd.OutOrStdout())
			if err := proc.Run(templateDir, destDir); err != nil {
				return err
			}

			if n := proc.Warnings(); n > 0 {
				log.Warn().Int("count", n).Msg("Some macros had no tweak table entry")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateDir, "template-dir", "t", "templates",
		"Directory in which to find templates")
	cmd.Flags().StringVarP(&destDir, "dest-dir", "d", "",
		"Directory in which to write the modified files")
	_ = cmd.MarkFlagRequired("dest-dir")

	return cmd
}
