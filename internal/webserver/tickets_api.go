package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/ayitek/borlette-pos/internal/gateway"
	"github.com/ayitek/borlette-pos/internal/output"
	"github.com/ayitek/borlette-pos/internal/types"
)

// handleTickets serves the ticket history. refresh=1 forces a backend
// fetch; otherwise the cached list answers immediately.
func handleTickets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var tickets []types.Ticket
	status := gateway.ReadOK
	if r.URL.Query().Get("refresh") == "1" {
		tickets, status = client.FetchTickets()
		if status == gateway.ReadFailed {
			// Fall back to whatever the cache holds.
			tickets = state.Tickets()
		}
	} else {
		tickets = state.Tickets()
	}

	writeJSON(w, map[string]any{
		"tickets": tickets,
		"status":  status.String(),
	})
}

func handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		TicketID int64 `json:"ticket_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.TicketID == 0 {
		http.Error(w, "ticket_id is required", http.StatusBadRequest)
		return
	}

	if err := client.DeleteTicket(req.TicketID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true})
}

// handleReprintTicket re-queues an existing ticket for printing.
func handleReprintTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		TicketID int64 `json:"ticket_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var ticket *types.Ticket
	for _, t := range state.Tickets() {
		if t.ID == req.TicketID {
			cp := t
			ticket = &cp
			break
		}
	}
	if ticket == nil {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	agentName := ""
	if sess := state.Session(); sess != nil {
		agentName = sess.AgentName
	}
	drawName := ticket.DrawID
	if d, ok := state.DrawByID(ticket.DrawID); ok {
		drawName = d.Name
	}

	if err := output.PrintTicket(*ticket, drawName, agentName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true})
}
