package appstate

import (
	"testing"

	"github.com/ayitek/borlette-pos/internal/types"
)

func TestSelectDrawMaintainsMembership(t *testing.T) {
	s := New()
	s.SelectDraw("midi")

	if got := s.SelectedDraw(); got != "midi" {
		t.Fatalf("SelectedDraw = %q, want midi", got)
	}
	set := s.SelectedDraws()
	if len(set) != 1 || set[0] != "midi" {
		t.Fatalf("SelectedDraws = %v, want [midi]", set)
	}
}

func TestToggleDrawRemovingCurrentClearsIt(t *testing.T) {
	s := New()
	s.SelectDraw("midi")

	if member := s.ToggleDraw("midi"); member {
		t.Fatal("toggle should have removed the draw")
	}
	if got := s.SelectedDraw(); got != "" {
		t.Fatalf("SelectedDraw = %q, want cleared after removing current", got)
	}
	if got := s.SelectedDraws(); len(got) != 0 {
		t.Fatalf("SelectedDraws = %v, want empty", got)
	}
}

func TestToggleDrawAddsNonMember(t *testing.T) {
	s := New()
	if member := s.ToggleDraw("soir"); !member {
		t.Fatal("toggle should have added the draw")
	}
}

func TestApplyTicketsRejectsStaleSequence(t *testing.T) {
	s := New()

	seqOld := s.BeginTicketsFetch()
	seqNew := s.BeginTicketsFetch()

	if !s.ApplyTickets(seqNew, []types.Ticket{{ID: 2, Serial: "NEW"}}) {
		t.Fatal("newer result must be applied")
	}
	if s.ApplyTickets(seqOld, []types.Ticket{{ID: 1, Serial: "OLD"}}) {
		t.Fatal("stale result must be discarded")
	}

	tickets := s.Tickets()
	if len(tickets) != 1 || tickets[0].Serial != "NEW" {
		t.Fatalf("tickets = %+v, want only the newer result", tickets)
	}
}

func TestRemoveTicket(t *testing.T) {
	s := New()
	seq := s.BeginTicketsFetch()
	s.ApplyTickets(seq, []types.Ticket{{ID: 1}, {ID: 2}, {ID: 3}})

	s.RemoveTicket(2)

	tickets := s.Tickets()
	if len(tickets) != 2 {
		t.Fatalf("ticket count = %d, want 2", len(tickets))
	}
	for _, tk := range tickets {
		if tk.ID == 2 {
			t.Fatal("ticket 2 should have been removed")
		}
	}
}

func TestCartTotal(t *testing.T) {
	s := New()
	s.AddBet(types.Bet{Number: "42", Amount: 100})
	s.AddBet(types.Bet{Number: "07", Amount: 50})

	if got := s.CartTotal(); got != 150 {
		t.Fatalf("CartTotal = %v, want 150", got)
	}

	s.ClearCart()
	if got := s.CartTotal(); got != 0 {
		t.Fatalf("CartTotal after clear = %v, want 0", got)
	}
}

func TestDrawByID(t *testing.T) {
	s := New()
	s.SetDraws([]types.Draw{{ID: "midi", Name: "Miami Midi"}})

	if d, ok := s.DrawByID("midi"); !ok || d.Name != "Miami Midi" {
		t.Fatalf("DrawByID(midi) = %+v/%v, want hit", d, ok)
	}
	if _, ok := s.DrawByID("gone"); ok {
		t.Fatal("DrawByID must miss on unknown id")
	}
}

func TestClearTearsEverythingDown(t *testing.T) {
	s := New()
	s.SetSession(types.Session{Token: "tok", AgentID: "a1"})
	s.SetDraws([]types.Draw{{ID: "midi"}})
	s.SelectDraw("midi")
	s.AddBet(types.Bet{Amount: 10})
	seq := s.BeginTicketsFetch()
	s.ApplyTickets(seq, []types.Ticket{{ID: 1}})

	s.Clear()

	if s.Session() != nil {
		t.Fatal("session must be erased")
	}
	if len(s.Draws()) != 0 || len(s.Tickets()) != 0 || len(s.Cart()) != 0 {
		t.Fatal("caches must be erased")
	}
	if s.SelectedDraw() != "" || len(s.SelectedDraws()) != 0 {
		t.Fatal("selection must be erased")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := New()
	s.SetDraws([]types.Draw{{ID: "midi", Name: "Miami Midi"}})

	draws := s.Draws()
	draws[0].Name = "mutated"

	if d, _ := s.DrawByID("midi"); d.Name != "Miami Midi" {
		t.Fatal("mutating a returned slice must not affect the container")
	}
}
