// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/config"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet/readers"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/tool"
)

func newMCPCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server on stdio exposing the convert_to_gift tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.Load(*configPath, cmd.Flags()); err != nil {
				return err
			}
			log.Printf("[MCP] giftgen %s serving on stdio", Version)
			s := tool.NewServer(Version, tool.NewConverter(readers.NewDefaultLoader()))
			return s.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
