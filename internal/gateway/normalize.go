package gateway

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/types"
	"go.uber.org/zap"
)

// The backend's ticket schema is not consistent across sources: older
// endpoints use French field names and a keyed number→amount mapping
// for bet lines. All known variants are mapped into the canonical
// types.Ticket here, at the boundary, so nothing downstream ever
// re-implements the fallback chain.

type rawTicket struct {
	ID     int64  `json:"id"`
	Serial string `json:"serial"`
	Code   string `json:"code"` // legacy display id

	DrawID string `json:"draw_id"`
	Tirage string `json:"tirage"` // legacy draw reference

	Amount  *float64 `json:"amount"`
	Total   *float64 `json:"total"`   // legacy
	Montant *float64 `json:"montant"` // legacy

	Checked   bool     `json:"checked"`
	WinAmount *float64 `json:"win_amount"`
	Gain      *float64 `json:"gain"` // legacy

	CreatedAt string          `json:"created_at"`
	Bets      json.RawMessage `json:"bets"`
}

type rawBet struct {
	Number   string  `json:"number"`
	GameType string  `json:"game_type"`
	Amount   float64 `json:"amount"`
}

func normalizeTicket(r rawTicket) types.Ticket {
	t := types.Ticket{
		ID:        r.ID,
		Serial:    firstNonEmpty(r.Serial, r.Code),
		DrawID:    firstNonEmpty(r.DrawID, r.Tirage),
		Amount:    firstNonNil(r.Amount, r.Total, r.Montant),
		Checked:   r.Checked,
		WinAmount: firstNonNil(r.WinAmount, r.Gain),
		CreatedAt: parseTimestamp(r.CreatedAt),
		Bets:      parseBets(r.Bets),
	}
	return t
}

// parseBets accepts both bet-line shapes: a list of entries and a
// keyed number→amount mapping. Both yield the same canonical lines;
// the map form is sorted by number for stable rendering.
func parseBets(raw json.RawMessage) []types.TicketBet {
	if len(raw) == 0 {
		return nil
	}

	var list []rawBet
	if err := json.Unmarshal(raw, &list); err == nil {
		bets := make([]types.TicketBet, 0, len(list))
		for _, b := range list {
			bets = append(bets, types.TicketBet{
				Number:   b.Number,
				GameType: b.GameType,
				Amount:   b.Amount,
			})
		}
		return bets
	}

	var keyed map[string]float64
	if err := json.Unmarshal(raw, &keyed); err == nil {
		numbers := make([]string, 0, len(keyed))
		for n := range keyed {
			numbers = append(numbers, n)
		}
		sort.Strings(numbers)

		bets := make([]types.TicketBet, 0, len(numbers))
		for _, n := range numbers {
			bets = append(bets, types.TicketBet{Number: n, Amount: keyed[n]})
		}
		return bets
	}

	logger.Warn("Unrecognized bet-line shape in ticket payload",
		zap.String("payload", string(raw)))
	return nil
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	logger.Debug("Unparseable ticket timestamp", zap.String("value", s))
	return time.Time{}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonNil(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}
