package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/solarsite/schema"
)

// Color variables for console output.
var (
	GoColor     = color.New(color.FgGreen, color.Bold) // GoColor marks a site worth pursuing.
	ReviewColor = color.New(color.FgYellow)            // ReviewColor is standard caution, not bold.
	NoGoColor   = color.New(color.FgRed, color.Bold)   // NoGoColor represents standard danger.
	WeakColor   = color.New(color.FgRed)               // WeakColor highlights criteria below the suggestion threshold.
)

// GetPlainLabel returns the plain text label of a decision.
// This is the core logic used for CSV, JSON and table printing.
func GetPlainLabel(d schema.Decision) string {
	return d.Label()
}

// GetColorLabel returns a colored decision label for console output (table).
func GetColorLabel(d schema.Decision) string {
	text := GetPlainLabel(d)

	switch d {
	case schema.GoDecision:
		return GoColor.Sprint(text)
	case schema.ReviewDecision:
		return ReviewColor.Sprint(text)
	default:
		return NoGoColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".solarsite_analysis.db"
	}
	return filepath.Join(homeDir, ".solarsite_analysis.db")
}

// TruncatePath truncates a path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
