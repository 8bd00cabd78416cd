package service

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ludo-technologies/codesim/domain"
)

// scoreBar is one row of the similarity chart
type scoreBar struct {
	Label   string
	Percent string
	Width   string
	Class   string
}

// verdictRow is one clone type in the verdict table
type verdictRow struct {
	Label    string
	Detected bool
}

// pairRow is one reported pair of a batch report
type pairRow struct {
	First    string
	Second   string
	Combined string
	Types    string
}

type htmlReport struct {
	Title       string
	Subtitle    string
	GeneratedAt string
	Version     string
	Duration    int64
	Cards       []metricCard
	Bars        []scoreBar
	Verdicts    []verdictRow
	Units       []domain.UnitStats
	Pairs       []pairRow
	Skipped     []string
}

type metricCard struct {
	Value string
	Label string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header, .content {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .header h1 { color: #667eea; margin-bottom: 10px; }
        .header .meta { color: #888; font-size: 0.9em; }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 20px;
        }
        .metric-card { background: #f8f9fa; border-radius: 8px; padding: 20px; text-align: center; }
        .metric-value { font-size: 1.8em; font-weight: bold; color: #667eea; }
        .metric-label { color: #666; font-size: 0.9em; }
        h2 { color: #444; margin: 20px 0 10px; }
        .bar-row { display: grid; grid-template-columns: 260px 1fr 110px; gap: 10px; align-items: center; margin: 6px 0; }
        .bar-track { background: #eee; border-radius: 4px; height: 18px; overflow: hidden; }
        .bar-fill { height: 100%; background: #667eea; }
        .bar-fill.high { background: #0cce6b; }
        .bar-fill.low { background: #ff4e42; }
        .bar-value { text-align: right; font-family: monospace; }
        table { width: 100%; border-collapse: collapse; }
        th, td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #eee; }
        th { background: #f8f9fa; }
        .badge { padding: 2px 10px; border-radius: 12px; font-size: 0.85em; }
        .badge.yes { background: #e6f9f0; color: #0a8f4c; }
        .badge.no { background: #f1f1f1; color: #888; }
        @media (max-width: 768px) {
            .metric-grid { grid-template-columns: 1fr; }
            .bar-row { grid-template-columns: 1fr; }
        }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>{{.Title}}</h1>
        <div>{{.Subtitle}}</div>
        <div class="meta">Generated {{.GeneratedAt}} &middot; codesim {{.Version}} &middot; {{.Duration}}ms</div>
    </div>
    <div class="content">
        {{if .Cards}}<div class="metric-grid">
        {{range .Cards}}<div class="metric-card"><div class="metric-value">{{.Value}}</div><div class="metric-label">{{.Label}}</div></div>
        {{end}}</div>{{end}}
        {{if .Bars}}<h2>Similarity Metrics</h2>
        {{range .Bars}}<div class="bar-row">
            <div>{{.Label}}</div>
            <div class="bar-track"><div class="bar-fill {{.Class}}" style="width: {{.Width}}"></div></div>
            <div class="bar-value">{{.Percent}}</div>
        </div>
        {{end}}{{end}}
        {{if .Verdicts}}<h2>Clone Types</h2>
        <table>
            <tr><th>Clone type</th><th>Detected</th></tr>
            {{range .Verdicts}}<tr><td>{{.Label}}</td><td>{{if .Detected}}<span class="badge yes">yes</span>{{else}}<span class="badge no">no</span>{{end}}</td></tr>
            {{end}}
        </table>{{end}}
        {{if .Units}}<h2>Inputs</h2>
        <table>
            <tr><th>Name</th><th>Lines</th><th>Tokens</th><th>Nodes</th><th>Identifiers</th><th>Error nodes</th></tr>
            {{range .Units}}<tr><td>{{.Name}}</td><td>{{.Lines}}</td><td>{{.Tokens}}</td><td>{{.Nodes}}</td><td>{{.Identifiers}}</td><td>{{.ErrorNodes}}</td></tr>
            {{end}}
        </table>{{end}}
        {{if .Pairs}}<h2>Pairs</h2>
        <table>
            <tr><th>First</th><th>Second</th><th>Combined</th><th>Clone types</th></tr>
            {{range .Pairs}}<tr><td>{{.First}}</td><td>{{.Second}}</td><td>{{.Combined}}</td><td>{{.Types}}</td></tr>
            {{end}}
        </table>{{end}}
        {{if .Skipped}}<h2>Skipped Files</h2>
        <ul>{{range .Skipped}}<li>{{.}}</li>{{end}}</ul>{{end}}
    </div>
</div>
</body>
</html>
`))

func (r *htmlReport) render(w io.Writer) error {
	if err := reportTemplate.Execute(w, r); err != nil {
		return domain.NewOutputError("failed to render HTML report", err)
	}
	return nil
}

// newScoreBar sizes a bar for a [0,1] score
func newScoreBar(label string, value float64, threshold float64) scoreBar {
	class := ""
	switch {
	case value > threshold:
		class = "high"
	case value < 0.5:
		class = "low"
	}
	return scoreBar{
		Label:   label,
		Percent: fmt.Sprintf("%.4f%%", value*100),
		Width:   fmt.Sprintf("%.2f%%", value*100),
		Class:   class,
	}
}
