package console

import (
	"fmt"
	"io"
	"strings"

	"ecosoap/internal/output"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Print renders a property's pickup history to the writer in a compact format.
func Print(w io.Writer, view output.HistoryView) {
	fmt.Fprintf(w, "%s■ %s%s\n", colorCyan, strings.ToUpper(view.Property), colorReset)
	if view.Subtitle != "" {
		fmt.Fprintf(w, "%s%s%s\n", colorGray, view.Subtitle, colorReset)
	}

	for _, sec := range view.Sections {
		if len(sec.Cells) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", colorCyan, "─ "+sec.Title, colorReset)

		for _, c := range sec.Cells {
			color := colorFor(c.Tone)

			label := c.DateLabel
			if len(label) > 26 {
				label = label[:23] + "..."
			}

			// Dots leader
			dots := strings.Repeat("·", max(28-len(label), 1))

			fmt.Fprintf(w, "  %s%s%s %s%s%s%s %s %s%s%s\n",
				color, c.StatusIcon, colorReset,
				label, colorCyan, dots, colorReset,
				c.Code, colorGray, c.Collection, colorReset)
			fmt.Fprintf(w, "      %s\n", c.CartonSummary())
			if c.Notes != "" {
				fmt.Fprintf(w, "      %s%s%s\n", colorGray, c.Notes, colorReset)
			}
		}
	}

	fmt.Fprintf(w, "%s─ Summary%s: %d pickups | %d cartons\n\n", colorCyan, colorReset, view.TotalPickups, view.TotalCartons)
}

func colorFor(tone output.Tone) string {
	switch tone {
	case output.TonePending:
		return colorYellow
	case output.ToneCancelled:
		return colorRed
	default:
		return colorGreen
	}
}
