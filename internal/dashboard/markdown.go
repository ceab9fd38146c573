package dashboard

import (
	"fmt"
	"strings"

	"github.com/GoPolymarket/forecastviz/internal/payload"
)

// RenderMarkdown renders the run digest for a payload.
func RenderMarkdown(p payload.Payload) string {
	var b strings.Builder
	b.WriteString("# " + p.Title + "\n\n")
	b.WriteString(p.Description + "\n\n")
	b.WriteString(fmt.Sprintf("- Dataset: `%s`\n", p.Dataset))
	b.WriteString(fmt.Sprintf("- Model: `%s`\n", p.Model))
	b.WriteString(fmt.Sprintf("- Horizon: `%d`\n", p.Horizon))
	b.WriteString(fmt.Sprintf("- Tail Risk Score: `%.4f`\n", p.TailRiskScore))
	b.WriteString(fmt.Sprintf("- Regime Shift Score: `%.4f`\n", p.RegimeShiftScore))
	b.WriteString("\n## Metrics\n\n")
	m := p.Metrics
	b.WriteString(fmt.Sprintf("- MAE: `%.6f`\n", m.MAE))
	b.WriteString(fmt.Sprintf("- RMSE: `%.6f`\n", m.RMSE))
	b.WriteString(fmt.Sprintf("- NLL: `%.6f`\n", m.NLL))
	b.WriteString(fmt.Sprintf("- CRPS: `%.6f`\n", m.CRPS))
	b.WriteString(fmt.Sprintf("- Coverage: `%.6f`\n", m.Coverage))
	return b.String()
}
