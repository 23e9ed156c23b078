package tui

import (
	"fmt"
	"strings"

	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
)

// resultView renders the last calculation, or prompt when there is none.
func resultView(b *model.Breakdown, prompt string, fm *render.Formatter) string {
	if b == nil {
		return dimStyle.Render(prompt)
	}

	var sb strings.Builder
	sb.WriteString(headlineStyle.Render("True hourly wage: " + fm.Money(b.Headline)))
	sb.WriteString("\n")
	sb.WriteString(render.CompareText(*b, fm))
	sb.WriteString("\n\n")

	rows := render.BreakdownRows(*b, fm)
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %s\n", width, r[0], r[1]))
	}

	sb.WriteString("\n")
	for _, ins := range render.InsightLines(*b, fm) {
		sb.WriteString(fmt.Sprintf("%-8s %s\n", ins.Title+":", ins.Value))
		sb.WriteString(dimStyle.Render("         "+ins.Detail) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
