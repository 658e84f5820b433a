package algo

import (
	"sort"

	"github.com/huangsam/solarsite/schema"
)

// RankSites sorts sites by total score in descending order and returns the top 'limit'
// sites. Ties are broken by path so the ranking is deterministic. If limit is greater
// than the number of sites, all sites are returned in sorted order.
func RankSites(sites []schema.SiteResult, limit int) []schema.SiteResult {
	sort.SliceStable(sites, func(i, j int) bool {
		if sites[i].Report.TotalScore != sites[j].Report.TotalScore {
			return sites[i].Report.TotalScore > sites[j].Report.TotalScore
		}
		return sites[i].Path < sites[j].Path
	})
	if limit >= 0 && len(sites) > limit {
		return sites[:limit]
	}
	return sites
}
