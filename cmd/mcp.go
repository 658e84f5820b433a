package cmd

import (
	"github.com/huangsam/solarsite/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the solarsite MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents score and rank sites.

Tools:
  score_site     - score one metrics object and return its report
  rank_sites     - score and rank site documents matched by a glob pattern
  get_catalog    - list criteria, weights and normalization policies
  classify_score - map a total score onto GO, REVIEW or NO-GO

Persistent flags such as --land-ownership and --analysis-backend apply to every tool call.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
