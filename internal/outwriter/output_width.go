package outwriter

import (
	"os"

	"github.com/huangsam/chartkit/internal/contract"
	"golang.org/x/term"
)

// terminalWidth returns the configured width override, the detected terminal width,
// or a conservative 80 columns.
func terminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetMaxPathWidth calculates the maximum width for SVG path data in the chart table
// based on terminal width and the fixed columns next to it.
func GetMaxPathWidth(cfg *contract.Config) int {
	// Series + Name + Points + Length + Label with borders/padding
	baseWidth := 55

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	available := terminalWidth(cfg) - baseWidth
	if available < 15 {
		return 15
	}
	if available > 120 {
		return 120
	}
	return available
}

// GetMaxNarrationWidth is the widest narration shown in the navigation table.
func GetMaxNarrationWidth(cfg *contract.Config) int {
	// Step + Key + Action + Focus + Selected
	available := terminalWidth(cfg) - 50
	if available < 20 {
		return 20
	}
	return available
}
