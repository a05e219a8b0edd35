// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer returns an MCP server with every giftgen tool registered.
func NewServer(version string, converter *Converter) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "giftgen", Version: version}, nil)
	mcp.AddTool(server, MetadataConvertToGIFT, converter.ConvertToGIFT)
	return server
}
