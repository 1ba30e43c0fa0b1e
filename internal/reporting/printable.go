package reporting

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/ayitek/borlette-pos/internal/config"
	"github.com/ayitek/borlette-pos/internal/types"
)

// Printable report: a self-contained HTML page the agent can print
// from any browser on the terminal's network. Kept deliberately plain;
// thermal ticket output goes through the output package instead.

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f %s", v, config.CurrencySymbol)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: monospace; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #333; padding: 4px 8px; text-align: left; }
.totals td { font-weight: bold; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
<p>{{.AgentName}} - {{.GeneratedAt}}</p>
<table>
<tr><th>Tickets</th><th>Mise</th><th>Gains</th><th>Pertes</th><th>Balance</th></tr>
<tr class="totals">
<td>{{.Report.TicketCount}}</td>
<td>{{money .Report.TotalStake}}</td>
<td>{{money .Report.TotalWins}}</td>
<td>{{money .Report.TotalLoss}}</td>
<td>{{money .Report.Balance}}</td>
</tr>
</table>
{{if .Tickets}}
<h3>Fiches</h3>
<table>
<tr><th>Serial</th><th>Tirage</th><th>Montant</th><th>Statut</th><th>Gain</th></tr>
{{range .Tickets}}
<tr>
<td>{{.Serial}}</td>
<td>{{.DrawID}}</td>
<td>{{money .Amount}}</td>
<td>{{if .Checked}}vérifiée{{else}}en attente{{end}}</td>
<td>{{if .Checked}}{{money .WinAmount}}{{else}}—{{end}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

type reportPage struct {
	Title       string
	AgentName   string
	GeneratedAt string
	Report      types.Report
	Tickets     []types.Ticket
}

// WriteHTML renders the printable report page.
func WriteHTML(w io.Writer, title, agentName string, report types.Report, tickets []types.Ticket, now time.Time) error {
	return reportTmpl.Execute(w, reportPage{
		Title:       title,
		AgentName:   agentName,
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Report:      report,
		Tickets:     tickets,
	})
}
