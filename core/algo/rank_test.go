package algo

import (
	"testing"

	"github.com/huangsam/solarsite/schema"
	"github.com/stretchr/testify/assert"
)

func site(path string, total float64) schema.SiteResult {
	return schema.SiteResult{Path: path, Report: schema.Report{TotalScore: total}}
}

func TestRankSites(t *testing.T) {
	sites := []schema.SiteResult{
		site("c.json", 6.1),
		site("a.json", 8.4),
		site("b.json", 6.1),
		site("d.json", 3.2),
	}

	ranked := RankSites(sites, 10)
	assert.Len(t, ranked, 4)
	var paths []string
	for _, s := range ranked {
		paths = append(paths, s.Path)
	}
	assert.Equal(t, []string{"a.json", "b.json", "c.json", "d.json"}, paths)

	top := RankSites(sites, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "a.json", top[0].Path)

	assert.Empty(t, RankSites(nil, 5))
}
