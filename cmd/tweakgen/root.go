package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tweakgen/tweakgen/pkg/logging"
)

var (
	verbosity int
	cfgFile   string

	rootCmd = &cobra.Command{
		Use:   "tweakgen",
		Short: "Apply configured value tweaks to game data templates",
		Long: `tweakgen rewrites a tree of template text files into a live directory,
replacing @name|default@ macros with values computed from a tweak table.
The original encoding, byte-order mark and newline convention of every
file are preserved so the resulting diffs stay minimal.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Tweak table TOML file (default is the built-in table)")

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(versionCmd)
}
