package dashboard

import (
	"fmt"
	"html"
	"strings"

	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/surface"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:0;padding:24px;background:#f6f4ef;color:#0f1720}
.kpis{display:grid;grid-template-columns:repeat(auto-fit,minmax(140px,1fr));gap:12px;margin:16px 0}
.kpi{background:#fff;border-radius:8px;padding:10px 12px}
.kpi span{display:block;font-size:12px;color:#5b6770}
.panel{background:#fff;border-radius:8px;padding:12px 16px;margin:12px 0}
.chart-svg{width:100%;height:auto}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(240px,1fr));gap:12px}
.card{background:#fff;border-radius:8px;padding:12px 16px;color:inherit;text-decoration:none}`

func writeHead(b *strings.Builder, title string) {
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>" + pageStyle + "</style>\n</head>\n<body>\n")
}

// RenderHTML renders the dashboard as a standalone page.
func RenderHTML(d Dashboard) string {
	var b strings.Builder
	writeHead(&b, d.Title)
	b.WriteString("<header>\n<h1>" + html.EscapeString(d.Title) + "</h1>\n")
	if d.Description != "" {
		b.WriteString("<p>" + html.EscapeString(d.Description) + "</p>\n")
	}
	b.WriteString("</header>\n")

	if len(d.KPIs) > 0 {
		b.WriteString(`<div class="kpis">` + "\n")
		for _, k := range d.KPIs {
			b.WriteString(fmt.Sprintf(`<div class="kpi"><span>%s</span><strong>%s</strong></div>`+"\n",
				html.EscapeString(k.Label), html.EscapeString(k.Value)))
		}
		b.WriteString("</div>\n")
	}

	for _, p := range d.Panels {
		b.WriteString(`<section class="panel" data-kind="` + string(p.Kind) + `">` + "\n")
		b.WriteString("<h2>" + html.EscapeString(p.Title) + "</h2>\n")
		b.WriteString("<p>" + html.EscapeString(p.Description) + "</p>\n")
		b.WriteString(surface.SVG(p.Surface) + "\n")
		for _, line := range p.Summary {
			b.WriteString("<p class=\"summary\">" + html.EscapeString(line) + "</p>\n")
		}
		b.WriteString("</section>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// RenderLabHTML renders the mode index page linking every dashboard.
func RenderLabHTML(cards []payload.ModeCard) string {
	var b strings.Builder
	writeHead(&b, "PRE Multi-Mode Lab")
	b.WriteString("<header>\n<h1>PRE Multi-Mode Lab</h1>\n")
	b.WriteString("<p>One inference engine, multiple wrappers. Each mode focuses on distinct risk narratives while preserving a consistent probabilistic contract.</p>\n")
	b.WriteString("</header>\n")
	b.WriteString(`<div class="cards">` + "\n")
	for _, c := range cards {
		b.WriteString(`<a class="card" href="/lab/modes/` + html.EscapeString(c.Mode) + `">` + "\n")
		b.WriteString("<h2>" + html.EscapeString(c.Title) + "</h2>\n")
		b.WriteString("<p>" + html.EscapeString(c.Description) + "</p>\n")
		b.WriteString("<small>" + html.EscapeString(c.Dataset+" · "+c.Model) + "</small>\n")
		b.WriteString("</a>\n")
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}
