package cmd

import (
	"github.com/huangsam/solarsite/core"
	"github.com/huangsam/solarsite/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd evaluates a single site document.
var scoreCmd = &cobra.Command{
	Use:   "score <site-document>",
	Short: "Score one candidate site and print its decision matrix",
	Long: `Evaluate one site document against the 15 suitability criteria.

The document is a flat JSON or YAML object with one numeric value per metric
(null when the upstream source was unavailable) and an integer landOwnership code.
Use "-" to read the document from stdin.

Each criterion is normalized to a 0-10 score, weighted, and summed into a total.
The total decides the outcome: GO (>= 7), REVIEW (>= 5) or NO-GO.
Criteria scoring below 5 produce improvement suggestions.

Examples:
  # Score a site document
  solarsite score sites/north-ridge.json

  # Score from stdin as YAML and mark the land as public
  cat site.yaml | solarsite score - --input-format yaml --land-ownership 1

  # Machine-readable output
  solarsite score sites/north-ridge.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot score site", err)
		}
	},
}

// batchCmd ranks many site documents.
var batchCmd = &cobra.Command{
	Use:   "batch <pattern>...",
	Short: "Score and rank many candidate sites matched by glob patterns",
	Long: `Score every site document matched by the given patterns and rank them by total score.

Patterns support doublestar globs such as "sites/**/*.json". Only .json, .yaml and
.yml files are picked up from globs. Documents that fail to load or validate are
skipped with a warning, so one bad file does not stop the run.

Ties on total score are broken by site path for a stable ranking.

Examples:
  # Rank every site under a folder
  solarsite batch "sites/**/*.json"

  # Top 5 as CSV for a spreadsheet
  solarsite batch "sites/*.yaml" --limit 5 --output csv --output-file ranking.csv

  # Score the candidate list with tracking enabled
  solarsite batch "candidates/*.json" --analysis-backend sqlite`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank sites", err)
		}
	},
}

// catalogCmd prints the criteria catalog.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the suitability criteria, weights and decision thresholds",
	Long: `Print the fixed criteria catalog used for scoring.

For every criterion this shows its weight, normalization policy and the rule that
maps a raw value onto the 0-10 scale, followed by the total-score formula and
the decision thresholds.

Examples:
  solarsite catalog
  solarsite catalog --output yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalog(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot print catalog", err)
		}
	},
}
