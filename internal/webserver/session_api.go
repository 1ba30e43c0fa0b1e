package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"go.uber.org/zap"
)

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	sess, err := client.Login(req.Username, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("username", req.Username), zap.Error(err))
		writeError(w, err)
		return
	}

	// Session caches are populated eagerly so the first screen renders
	// without waiting on further round trips.
	client.FetchLotteryConfig()
	client.FetchDraws()
	client.FetchBlockedNumbers()
	go client.FetchTickets()

	writeJSON(w, map[string]any{
		"success":    true,
		"agent_id":   sess.AgentID,
		"agent_name": sess.AgentName,
	})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := client.Logout(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true})
}

func handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := state.Session()
	if sess == nil {
		writeJSON(w, map[string]any{"logged_in": false})
		return
	}
	writeJSON(w, map[string]any{
		"logged_in":  true,
		"agent_id":   sess.AgentID,
		"agent_name": sess.AgentName,
	})
}
