// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// NewRootCmd builds the giftgen command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "giftgen",
		Short: "Convert question spreadsheets into Moodle GIFT files",
		Long: "giftgen turns a spreadsheet of multiple-choice questions (id, enunciado, correcta,\n" +
			"distractor1, distractor2, ...) into GIFT markup ready to import into Moodle.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(
		newConvertCmd(&configPath),
		newServeCmd(&configPath),
		newMCPCmd(&configPath),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the giftgen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	}
}
