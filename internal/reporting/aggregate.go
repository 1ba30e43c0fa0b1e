// Package reporting computes sales aggregates over ticket collections.
// The backend supplies pre-aggregated reports; this package applies the
// same rules locally so the terminal can report from its cached history
// when the backend figures are unavailable.
package reporting

import "github.com/ayitek/borlette-pos/internal/types"

// Aggregate rolls a ticket collection up into a report.
//
// Stake counts every ticket. Wins and losses only count settled
// tickets: an unchecked ticket contributes to stake but to neither
// side, and a checked ticket with a zero win is a loss for its full
// stake. Balance is stake minus wins, so pending tickets lean the
// balance toward the house until they settle.
func Aggregate(tickets []types.Ticket) types.Report {
	r := types.Report{TicketCount: len(tickets)}
	for _, t := range tickets {
		r.TotalStake += t.Amount
		if !t.Checked {
			continue
		}
		if t.WinAmount > 0 {
			r.TotalWins += t.WinAmount
		} else {
			r.TotalLoss += t.Amount
		}
	}
	r.Balance = r.TotalStake - r.TotalWins
	return r
}

// FilterByDraw keeps the tickets belonging to one draw.
func FilterByDraw(tickets []types.Ticket, drawID string) []types.Ticket {
	out := make([]types.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.DrawID == drawID {
			out = append(out, t)
		}
	}
	return out
}
