package app

import "html/template"

// Single-page dashboard, styled after the original tracker: metric cards,
// severity legend, trend line, and a table with per-tier row coloring.
// Colors are the dark-mode friendly palette the sheet's readers are used to.
const tmplDashboard = `
{{define "dashboard"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Sleep Persuasion Tracker</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',sans-serif;background:#0d1117;color:#c9d1d9;font-size:14px;line-height:1.5;max-width:860px;margin:0 auto;padding:24px 16px}
h1{font-size:2rem;font-weight:800;color:#f0f6fc;margin-bottom:4px}
.caption{color:#8b949e;font-size:12px;margin-bottom:16px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:130px;flex:1}
.card .val{font-size:22px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px;text-transform:uppercase;letter-spacing:.05em}
.legend{display:flex;gap:.5rem;flex-wrap:wrap;margin-bottom:16px}
.tag{border-radius:999px;padding:.2rem .6rem;font-size:.85rem;border:1px solid rgba(255,255,255,.06)}
.g{background:#065f46;color:#ecfdf5}
.y{background:#92400e;color:#fffbeb}
.o{background:#7c2d12;color:#fff7ed}
.r{background:#7f1d1d;color:#fef2f2}
h2{font-size:13px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:16px 0 8px}
.chart{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px;margin-bottom:16px}
.chart .axis{display:flex;justify-content:space-between;color:#8b949e;font-size:11px;margin-top:4px}
table{width:100%;border-collapse:collapse;font-size:13px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase;letter-spacing:.05em}
td{padding:5px 10px;border-bottom:1px solid #21262d;vertical-align:top}
td.min{font-weight:700;border-radius:4px;text-align:right}
.empty{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:24px;text-align:center;color:#8b949e}
.error{background:#7f1d1d;color:#fef2f2;border-radius:6px;padding:12px 16px;margin-bottom:16px}
form{margin:16px 0}
button{background:#1f6feb;border:none;color:#fff;padding:6px 16px;border-radius:6px;cursor:pointer;font-size:13px}
button:hover{background:#388bfd}
</style>
</head>
<body>
<h1>Sleep Persuasion Tracker</h1>
<p class="caption">Times are shown in {{.TargetTZ}} (converted from {{.SourceTZ}}).</p>

{{if .Err}}<div class="error">{{.Err}}</div>{{else if .Empty}}
<div class="empty">No rows to display yet. Add rows in your Google Sheet.</div>
{{else}}
<div class="cards">
  <div class="card"><div class="val">{{.Metrics.AverageMin}} min</div><div class="lbl">Average time</div></div>
  <div class="card"><div class="val">{{.Metrics.LatestMin}} min</div><div class="lbl">Latest</div></div>
  <div class="card"><div class="val">{{.Metrics.FastestMin}} min</div><div class="lbl">Fastest</div></div>
  <div class="card"><div class="val">{{.Metrics.SlowestMin}} min</div><div class="lbl">Slowest</div></div>
</div>

<div class="legend">
  <span class="tag g">&lt; 20 min (great)</span>
  <span class="tag y">20–45 min (ok)</span>
  <span class="tag o">45–60 min (tough)</span>
  <span class="tag r">&gt; 60 min (needs work)</span>
</div>

{{with .Trend}}
<h2>Trend</h2>
<div class="chart">
  <svg viewBox="0 0 {{.Width}} {{.Height}}" width="100%" height="{{.Height}}" preserveAspectRatio="none">
    <polyline fill="none" stroke="#1f6feb" stroke-width="2" points="{{.Points}}"/>
  </svg>
  <div class="axis"><span>{{.From}}</span><span>max {{.MaxMin}} min</span><span>{{.To}}</span></div>
</div>
{{end}}

<h2>Entries</h2>
<table>
  <thead><tr><th>Start</th><th>Slept</th><th>Minutes</th><th>Note</th></tr></thead>
  <tbody>
  {{range .Rows}}
    <tr><td>{{.Start}}</td><td>{{.Slept}}</td><td class="min {{.Tier}}">{{.Minutes}}</td><td>{{.Note}}</td></tr>
  {{end}}
  </tbody>
</table>
{{end}}

<form method="POST" action="/api/v1/refresh" onsubmit="fetch(this.action,{method:'POST'}).then(()=>location.reload());return false">
  <button type="submit">Refresh now</button>
</form>
</body>
</html>{{end}}`

func newTemplates() *template.Template {
	return template.Must(template.New("").Parse(tmplDashboard))
}
