package cmd

import (
	"github.com/huangsam/solarsite/core"
	"github.com/huangsam/solarsite/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD gating of candidate lists.
var checkCmd = &cobra.Command{
	Use:   "check <site-document>",
	Short: "Gate a candidate site on a minimum decision (fails on violations)",
	Long: `Score one site document and exit with a non-zero code when its decision is
worse than the required one.

Decisions are ordered GO > REVIEW > NO-GO. The default requirement is GO.

Use cases:
- Reject candidates before they enter a procurement list
- Validate refreshed measurements for a shortlisted site
- Keep a curated site catalog free of NO-GO entries

Examples:
  # Require a GO decision
  solarsite check sites/north-ridge.json

  # Accept REVIEW as well
  solarsite check sites/north-ridge.json --require review

  # Emit a JSON verdict for a pipeline step
  solarsite check sites/north-ridge.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Site check failed", err)
		}
	},
}
