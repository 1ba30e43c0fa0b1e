package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ayitek/borlette-pos/internal/output"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/types"
	"go.uber.org/zap"
)

func handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{
			"bets":  state.Cart(),
			"total": state.CartTotal(),
		})

	case http.MethodPost:
		var bet types.Bet
		if err := json.NewDecoder(r.Body).Decode(&bet); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := validateBet(bet); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		state.AddBet(bet)
		writeJSON(w, map[string]any{
			"success": true,
			"bets":    state.Cart(),
			"total":   state.CartTotal(),
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state.ClearCart()
	writeJSON(w, map[string]any{"success": true})
}

// handleCartSubmit is the sale: the selection is re-validated, the
// cart goes to the backend, and every created ticket is queued for
// printing. Print failures do not undo the sale; the ticket exists
// server-side either way.
func handleCartSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := engine.ValidateContinue(engine.Now()); err != nil {
		writeSelectionError(w, err)
		return
	}

	tickets, err := client.SaveTicket(state.Cart(), state.SelectedDraws())
	if err != nil {
		writeError(w, err)
		return
	}

	agentName := ""
	if sess := state.Session(); sess != nil {
		agentName = sess.AgentName
	}
	for _, t := range tickets {
		drawName := t.DrawID
		if d, ok := state.DrawByID(t.DrawID); ok {
			drawName = d.Name
		}
		if err := output.PrintTicket(t, drawName, agentName); err != nil {
			logger.Error("Failed to queue ticket for printing",
				zap.String("serial", t.Serial), zap.Error(err))
		}
	}

	writeJSON(w, map[string]any{
		"success": true,
		"tickets": tickets,
	})
}

// validateBet enforces the number format per game type, the stake
// bounds, and the blocked-number lists.
func validateBet(b types.Bet) error {
	if b.DrawID == "" {
		return fmt.Errorf("draw_id is required")
	}
	if b.Amount <= 0 {
		return fmt.Errorf("stake must be positive")
	}

	switch b.GameType {
	case types.GameBorlette:
		if !allDigits(b.Number) || len(b.Number) != 2 {
			return fmt.Errorf("borlette takes a 2-digit number")
		}
	case types.GameLotto3:
		if !allDigits(b.Number) || len(b.Number) != 3 {
			return fmt.Errorf("lotto3 takes a 3-digit number")
		}
	case types.GameLotto4:
		if !allDigits(b.Number) || len(b.Number) != 4 {
			return fmt.Errorf("lotto4 takes a 4-digit number")
		}
	case types.GameMariage:
		parts := strings.Split(b.Number, "x")
		if len(parts) != 2 || !allDigits(parts[0]) || len(parts[0]) != 2 ||
			!allDigits(parts[1]) || len(parts[1]) != 2 {
			return fmt.Errorf("mariage takes a NNxNN pair")
		}
	default:
		return fmt.Errorf("unknown game type %q", b.GameType)
	}

	if cfg := state.Config(); cfg != nil {
		if cfg.MinStake > 0 && b.Amount < cfg.MinStake {
			return fmt.Errorf("stake below minimum of %.0f", cfg.MinStake)
		}
		if cfg.MaxStake > 0 && b.Amount > cfg.MaxStake {
			return fmt.Errorf("stake above maximum of %.0f", cfg.MaxStake)
		}
	}

	blocked := state.BlockedNumbers()
	for _, n := range blocked.Global {
		if betPlaysNumber(b, n) {
			return fmt.Errorf("number %s is blocked", n)
		}
	}
	for _, n := range blocked.ByDraw[b.DrawID] {
		if betPlaysNumber(b, n) {
			return fmt.Errorf("number %s is blocked for this draw", n)
		}
	}
	return nil
}

// betPlaysNumber reports whether a bet involves a blocked number. A
// mariage pair is blocked when either half matches.
func betPlaysNumber(b types.Bet, number string) bool {
	if b.Number == number {
		return true
	}
	if b.GameType == types.GameMariage {
		for _, half := range strings.Split(b.Number, "x") {
			if half == number {
				return true
			}
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
