package webserver

import (
	"net/http"

	"github.com/ayitek/borlette-pos/internal/gateway"
	"github.com/ayitek/borlette-pos/internal/reporting"
	"github.com/ayitek/borlette-pos/internal/types"
)

// handleReport serves the sales report, global or per draw. The
// backend figure is preferred; when that read fails the same
// aggregation runs over the cached ticket history.
func handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	drawID := r.URL.Query().Get("draw_id")
	report, status := fetchOrComputeReport(drawID)

	writeJSON(w, map[string]any{
		"report": report,
		"status": status.String(),
	})
}

func fetchOrComputeReport(drawID string) (types.Report, gateway.ReadStatus) {
	var report types.Report
	var status gateway.ReadStatus
	if drawID == "" {
		report, status = client.FetchReport()
	} else {
		report, status = client.FetchDrawReport(drawID)
	}

	if status == gateway.ReadFailed {
		tickets := state.Tickets()
		if drawID != "" {
			tickets = reporting.FilterByDraw(tickets, drawID)
		}
		if len(tickets) > 0 {
			return reporting.Aggregate(tickets), gateway.ReadOK
		}
	}
	return report, status
}

// handlePrintableReport renders the report as a printable HTML page.
func handlePrintableReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	drawID := r.URL.Query().Get("draw_id")
	report, _ := fetchOrComputeReport(drawID)

	tickets := state.Tickets()
	title := "Rapport de ventes"
	if drawID != "" {
		tickets = reporting.FilterByDraw(tickets, drawID)
		name := drawID
		if d, ok := state.DrawByID(drawID); ok {
			name = d.Name
		}
		title = "Rapport de ventes - " + name
	}

	agentName := ""
	if sess := state.Session(); sess != nil {
		agentName = sess.AgentName
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reporting.WriteHTML(w, title, agentName, report, tickets, engine.Now()); err != nil {
		http.Error(w, "Failed to render report", http.StatusInternalServerError)
	}
}
