package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

// formatFindingStatus renders the EXISTS / VULNERABLE status cell for the
// results table.
func formatFindingStatus(exists, vulnerable bool) string {
	parts := make([]string, 0, 2)
	if exists {
		parts = append(parts, colorInfo("EXISTS"))
	}
	if vulnerable {
		parts = append(parts, colorError("VULNERABLE"))
	}
	return strings.Join(parts, " & ")
}
