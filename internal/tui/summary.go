package tui

import (
	"fmt"
	"strings"

	"shrink/internal/resizer"
)

type SummaryRow struct {
	Label string
	Value string
}

// SummaryRows lays out the three run counters.
func SummaryRows(s resizer.Summary) []SummaryRow {
	return []SummaryRow{
		{Label: "Images processed", Value: fmt.Sprintf("%d", s.Processed)},
		{Label: "Files skipped", Value: fmt.Sprintf("%d", s.Skipped)},
		{Label: "Errors", Value: fmt.Sprintf("%d", s.Errors)},
	}
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.Label))
		valueWidth = max(valueWidth, len(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value)))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
