package contract

import (
	"fmt"
	"io"
	"strings"
)

// LogAnalysisHeader prints a concise, 2-line header before a scoring run.
func LogAnalysisHeader(w io.Writer, cfg *Config, siteCount int) {
	inputs := strings.Join(cfg.Inputs, ", ")
	if inputs == "" {
		inputs = "-"
	}
	tracking := string(cfg.AnalysisBackend)
	if tracking == "" {
		tracking = "none"
	}

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(w, "🔎 Sites: %d from %s (Workers: %d)\n", siteCount, inputs, cfg.Workers)
		_, _ = fmt.Fprintf(w, "🗄️  Tracking: %s\n", tracking)
		return
	}
	_, _ = fmt.Fprintf(w, "Sites: %d from %s (Workers: %d)\n", siteCount, inputs, cfg.Workers)
	_, _ = fmt.Fprintf(w, "Tracking: %s\n", tracking)
}
