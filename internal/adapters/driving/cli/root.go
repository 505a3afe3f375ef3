// Package cli provides the command-line interface for autoprofile.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/autoprofile/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "autoprofile",
	Short: "Keep a profile picture, bio and name on the move",
	Long: `autoprofile rotates the profile picture, keeps a clock in the bio or
first name, and purges old profile pictures.

Commands are the same ones the chat module answers to:
  .autopfp <degrees> <delete_previous>   rotate the picture every interval
  .stopautopfp                           stop rotating
  .autobio <template>                    keep {time} in the bio current
  .stopautobio                           stop the bio clock
  .autoname <template>                   keep {time} in the first name current
  .stopautoname                          stop the name clock
  .delpfp <count|0 for all>              delete profile pictures
  .autostatus                            show loop status`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/.autoprofile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
