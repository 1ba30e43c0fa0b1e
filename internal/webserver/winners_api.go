package webserver

import (
	"encoding/json"
	"net/http"
)

func handleWinners(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	winners, status := client.FetchWinners()
	writeJSON(w, map[string]any{
		"winners": winners,
		"status":  status.String(),
	})
}

func handleWinnerResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	drawID := r.URL.Query().Get("draw_id")
	if drawID == "" {
		http.Error(w, "draw_id is required", http.StatusBadRequest)
		return
	}

	results, status := client.FetchWinnerResults(drawID)
	writeJSON(w, map[string]any{
		"results": results,
		"status":  status.String(),
	})
}

// handleCheckWinners triggers server-side settlement of this agent's
// tickets. A write: failures surface to the user.
func handleCheckWinners(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	winners, err := client.CheckWinningTickets()
	if err != nil {
		writeError(w, err)
		return
	}

	// Settlement changes ticket win fields; refresh the history cache.
	go client.FetchTickets()

	writeJSON(w, map[string]any{
		"success": true,
		"winners": winners,
	})
}

func handleMarkWinnerPaid(w http.ResponseWriter, r *http.Request) {
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
	if req.TicketID == 0 {
		http.Error(w, "ticket_id is required", http.StatusBadRequest)
		return
	}

	if err := client.MarkWinnerPaid(req.TicketID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true})
}
