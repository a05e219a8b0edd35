// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/config"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/gift"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/output"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/server"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet/readers"
)

func newServeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload and conversion HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return server.New(cfg, readers.NewDefaultLoader()).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("wrong-score", gift.DefaultPenalty.String(), "default distractor weight for uploads without wrong_score")
	cmd.Flags().String("category", "", "default category for uploads without category")
	cmd.Flags().Int("preview-chars", output.DefaultPreviewChars, "characters returned by /preview")
	return cmd
}
