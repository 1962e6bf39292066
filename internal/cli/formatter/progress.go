package formatter

import (
	"fmt"
	"strings"
)

const progressBarWidth = 20

// ProgressBar renders a fixed-width bar like "[██████░░░░░░░░░░░░░░]  30%".
func ProgressBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * progressBarWidth / 100
	return fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", progressBarWidth-filled),
		percent)
}
