// Package config holds the static tables: backend endpoint paths, the
// default draw schedule used when the backend cannot be reached, and
// payout/display constants.
package config

import "github.com/ayitek/borlette-pos/internal/types"

// Backend endpoint paths, relative to BACKEND_URL.
const (
	PathLogin          = "/api/login"
	PathSaveTicket     = "/api/tickets"
	PathListTickets    = "/api/tickets"
	PathDeleteTicket   = "/api/tickets/" // + id
	PathReport         = "/api/reports"
	PathDrawReport     = "/api/reports/draw" // ?draw_id=
	PathDraws          = "/api/draws"
	PathBlockedNumbers = "/api/blocked-numbers"
	PathDrawBlocked    = "/api/blocked-numbers/draw" // ?draw_id=
	PathWinners        = "/api/winners"
	PathWinnerResults  = "/api/winners/results"
	PathMarkWinnerPaid = "/api/winners/paid"
	PathCheckWinners   = "/api/winners/check"
	PathLotteryConfig  = "/api/config"
)

// Fallback payout multipliers, used only until the backend config has
// been fetched at least once.
var DefaultPayouts = map[string]float64{
	types.GameBorlette: 60,
	types.GameLotto3:   500,
	types.GameLotto4:   5000,
	types.GameMariage:  1000,
}

// DefaultDraws is the hardcoded schedule the client falls back to when
// the draw list cannot be fetched. Draws default to active; the
// administrative block only ever comes from the backend.
func DefaultDraws() []types.Draw {
	return []types.Draw{
		{ID: "miami-midi", Name: "Miami Midi", Time: "13:30", Color: "#1e88e5", Active: true},
		{ID: "miami-soir", Name: "Miami Soir", Time: "21:45", Color: "#0d47a1", Active: true},
		{ID: "newyork-midi", Name: "New York Midi", Time: "14:30", Color: "#e53935", Active: true},
		{ID: "newyork-soir", Name: "New York Soir", Time: "22:30", Color: "#b71c1c", Active: true},
		{ID: "georgia-midi", Name: "Georgia Midi", Time: "12:29", Color: "#43a047", Active: true},
		{ID: "georgia-soir", Name: "Georgia Soir", Time: "18:59", Color: "#1b5e20", Active: true},
	}
}

// Display constants for the local UI and printed tickets.
const (
	CurrencySymbol = "HTG"
	TicketWidthPx  = 384 // thermal printer line width
)
