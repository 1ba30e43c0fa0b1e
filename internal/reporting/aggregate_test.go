package reporting

import (
	"testing"

	"github.com/ayitek/borlette-pos/internal/types"
)

func TestAggregate(t *testing.T) {
	tickets := []types.Ticket{
		{ID: 1, DrawID: "midi", Amount: 100, Checked: true, WinAmount: 0},
		{ID: 2, DrawID: "midi", Amount: 50, Checked: true, WinAmount: 200},
		{ID: 3, DrawID: "soir", Amount: 75, Checked: false},
	}

	r := Aggregate(tickets)

	if r.TicketCount != 3 {
		t.Fatalf("TicketCount = %d, want 3", r.TicketCount)
	}
	if r.TotalStake != 225 {
		t.Fatalf("TotalStake = %v, want 225", r.TotalStake)
	}
	if r.TotalWins != 200 {
		t.Fatalf("TotalWins = %v, want 200", r.TotalWins)
	}
	if r.TotalLoss != 100 {
		t.Fatalf("TotalLoss = %v, want 100", r.TotalLoss)
	}
	if r.Balance != 25 {
		t.Fatalf("Balance = %v, want 25", r.Balance)
	}
}

func TestAggregateEmpty(t *testing.T) {
	r := Aggregate(nil)
	if r.TicketCount != 0 || r.TotalStake != 0 || r.Balance != 0 {
		t.Fatalf("empty aggregate = %+v, want zero report", r)
	}
}

func TestAggregateUncheckedTicketsPending(t *testing.T) {
	// Unchecked tickets count toward stake but neither wins nor losses.
	r := Aggregate([]types.Ticket{
		{ID: 1, Amount: 40, Checked: false},
		{ID: 2, Amount: 60, Checked: false},
	})
	if r.TotalStake != 100 {
		t.Fatalf("TotalStake = %v, want 100", r.TotalStake)
	}
	if r.TotalWins != 0 || r.TotalLoss != 0 {
		t.Fatalf("pending tickets must not settle: wins=%v loss=%v", r.TotalWins, r.TotalLoss)
	}
	if r.Balance != 100 {
		t.Fatalf("Balance = %v, want 100", r.Balance)
	}
}

func TestFilterByDraw(t *testing.T) {
	tickets := []types.Ticket{
		{ID: 1, DrawID: "midi"},
		{ID: 2, DrawID: "soir"},
		{ID: 3, DrawID: "midi"},
	}

	got := FilterByDraw(tickets, "midi")
	if len(got) != 2 {
		t.Fatalf("filtered count = %d, want 2", len(got))
	}
	for _, tk := range got {
		if tk.DrawID != "midi" {
			t.Fatalf("filtered ticket has draw %q, want midi", tk.DrawID)
		}
	}
}
