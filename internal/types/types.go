package types

import "time"

// Draw is a scheduled lottery event with a fixed daily time-of-day.
// The backend owns the list; the client never mutates a Draw.
type Draw struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Time   string `json:"time"` // "15:04", no date
	Color  string `json:"color"`
	Active bool   `json:"active"`
}

// Bet game types accepted by the backend.
const (
	GameBorlette = "borlette" // 2-digit number
	GameLotto3   = "lotto3"   // 3-digit number
	GameLotto4   = "lotto4"   // 4-digit number
	GameMariage  = "mariage"  // pair of 2-digit numbers
)

// Bet is one cart line: a number played on a draw for a stake. Bets
// live only in the state container until the cart is submitted.
type Bet struct {
	DrawID   string  `json:"draw_id"`
	GameType string  `json:"game_type"`
	Number   string  `json:"number"` // "NN" or "NNxNN" for mariage
	Amount   float64 `json:"amount"`
}

// TicketBet is a settled bet line inside a server-owned ticket.
type TicketBet struct {
	Number   string  `json:"number"`
	GameType string  `json:"game_type,omitempty"`
	Amount   float64 `json:"amount"`
}

// Ticket is a backend-persisted record of submitted bets. The client
// treats tickets as immutable snapshots; only the cache entry is
// removed after a confirmed server-side delete.
type Ticket struct {
	ID        int64       `json:"id"`
	Serial    string      `json:"serial"` // human-facing display id
	DrawID    string      `json:"draw_id"`
	Amount    float64     `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
	Bets      []TicketBet `json:"bets"`
	Checked   bool        `json:"checked"`
	WinAmount float64     `json:"win_amount"`
}

// BlockedNumbers holds the two server-sourced blocked-number sets,
// replaced wholesale at session start.
type BlockedNumbers struct {
	Global []string            `json:"global"`
	ByDraw map[string][]string `json:"by_draw"`
}

// Report is an aggregated view over a ticket collection. When the
// backend does not supply one, the client computes it with the same
// semantics (see reporting.Aggregate).
type Report struct {
	TicketCount int     `json:"ticket_count"`
	TotalStake  float64 `json:"total_stake"`
	TotalWins   float64 `json:"total_wins"`
	TotalLoss   float64 `json:"total_loss"`
	Balance     float64 `json:"balance"`
}

// Winner is a winning ticket as reported by the backend.
type Winner struct {
	TicketID  int64   `json:"ticket_id"`
	Serial    string  `json:"serial"`
	DrawID    string  `json:"draw_id"`
	WinAmount float64 `json:"win_amount"`
	Paid      bool    `json:"paid"`
}

// DrawResult is a published winning-number set for one draw occurrence.
type DrawResult struct {
	DrawID  string   `json:"draw_id"`
	Date    string   `json:"date"` // "2006-01-02"
	Numbers []string `json:"numbers"`
}

// LotteryConfig is backend-supplied operating configuration: payout
// multipliers per game type and display constants.
type LotteryConfig struct {
	Currency string             `json:"currency"`
	Payouts  map[string]float64 `json:"payouts"`
	MinStake float64            `json:"min_stake"`
	MaxStake float64            `json:"max_stake"`
}

// Session is the durable agent identity: the only state persisted
// client-side across restarts.
type Session struct {
	Token     string `json:"token"`
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
}
