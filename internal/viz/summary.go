package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled value of a summary panel.
type Field struct {
	Label string
	Value string
}

func F(label string, format string, args ...any) Field {
	return Field{Label: label, Value: fmt.Sprintf(format, args...)}
}

// Summary renders a titled panel of aligned label/value rows.
func Summary(title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	var sb strings.Builder
	sb.WriteString(Title.Render(title))
	for _, f := range fields {
		sb.WriteString("\n")
		sb.WriteString(MetricLabel.Render(f.Label + strings.Repeat(" ", width-lipgloss.Width(f.Label))))
		sb.WriteString("  ")
		sb.WriteString(MetricValue.Render(f.Value))
	}
	return Panel.Render(sb.String())
}

// Degrees converts radians for display.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
