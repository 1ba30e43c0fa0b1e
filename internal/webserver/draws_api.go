package webserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayitek/borlette-pos/internal/draws"
)

// handleDraws returns the draw board: the cached table with derived
// eligibility and selection flags. The same payload the ticker pushes
// over the WebSocket, for clients that poll instead.
func handleDraws(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, engine.Snapshot(engine.Now()))
}

func decodeDrawID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		DrawID string `json:"draw_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return "", false
	}
	if req.DrawID == "" {
		http.Error(w, "draw_id is required", http.StatusBadRequest)
		return "", false
	}
	return req.DrawID, true
}

func handleSelectDraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := decodeDrawID(w, r)
	if !ok {
		return
	}

	if err := engine.Select(id, engine.Now()); err != nil {
		writeSelectionError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "selected": state.SelectedDraws()})
}

func handleToggleDraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := decodeDrawID(w, r)
	if !ok {
		return
	}

	selected, err := engine.Toggle(id, engine.Now())
	if err != nil {
		writeSelectionError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"success":  true,
		"member":   selected,
		"selected": state.SelectedDraws(),
	})
}

// handleContinue re-validates the whole selection at the moment the
// user moves from draw choice to bet entry.
func handleContinue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := engine.ValidateContinue(engine.Now()); err != nil {
		writeSelectionError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "selected": state.SelectedDraws()})
}

// writeSelectionError renders an eligibility rejection as a conflict;
// it is an expected user-flow outcome, not a server fault.
func writeSelectionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, draws.ErrDrawNotEligible) {
		status = http.StatusConflict
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": err.Error(),
	})
}
