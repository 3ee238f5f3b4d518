package render

import (
	"fmt"
	"strings"

	doupinpin "github.com/Yesmaniamaurora/DouPinPinv2"
)

const esc = "\u001b"

// ANSI renders the grid as a 24-bit color terminal preview. Each cell
// becomes two spaces painted with the bead color as the background;
// background cells fall back to the terminal's own background. Adjacent
// cells with the same color share a single escape sequence, and every
// row ends with a reset so the preview never bleeds into the prompt.
func ANSI(grid doupinpin.Grid) string {
	var sb strings.Builder
	for _, row := range grid {
		current := ""
		for _, cell := range row {
			code := esc + "[0m"
			if !cell.Background {
				code = fmt.Sprintf("%s[48;2;%d;%d;%dm",
					esc, cell.RGB.R, cell.RGB.G, cell.RGB.B)
			}
			if code != current {
				sb.WriteString(code)
				current = code
			}
			sb.WriteString("  ")
		}
		sb.WriteString(esc + "[0m\n")
	}
	return sb.String()
}
