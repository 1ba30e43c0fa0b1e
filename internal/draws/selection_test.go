package draws

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ayitek/borlette-pos/internal/appstate"
	"github.com/ayitek/borlette-pos/internal/types"
)

func newTestEngine() (*Engine, *appstate.State) {
	state := appstate.New()
	state.SetDraws([]types.Draw{
		{ID: "midi", Name: "Miami Midi", Time: "13:30", Active: true},
		{ID: "soir", Name: "Miami Soir", Time: "21:45", Active: true},
		{ID: "ferme", Name: "Georgia Midi", Time: "12:29", Active: false},
	})
	return NewEngine(state, time.UTC), state
}

func TestSelectEligibleDraw(t *testing.T) {
	engine, state := newTestEngine()

	if err := engine.Select("midi", at(10, 0, 0)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if got := state.SelectedDraw(); got != "midi" {
		t.Fatalf("selected draw = %q, want %q", got, "midi")
	}
	if got := state.SelectedDraws(); len(got) != 1 || got[0] != "midi" {
		t.Fatalf("selected set = %v, want [midi]", got)
	}
}

func TestSelectRejectsAdminBlockedDraw(t *testing.T) {
	engine, state := newTestEngine()

	err := engine.Select("ferme", at(10, 0, 0))
	if !errors.Is(err, ErrDrawNotEligible) {
		t.Fatalf("Select error = %v, want ErrDrawNotEligible", err)
	}
	if got := state.SelectedDraws(); len(got) != 0 {
		t.Fatalf("selection must be untouched after rejection, got %v", got)
	}
}

func TestSelectRejectsDrawInsideWindow(t *testing.T) {
	engine, _ := newTestEngine()

	err := engine.Select("midi", at(13, 28, 0))
	if !errors.Is(err, ErrDrawNotEligible) {
		t.Fatalf("Select error = %v, want ErrDrawNotEligible", err)
	}
}

func TestToggleRemovalAlwaysAllowed(t *testing.T) {
	engine, state := newTestEngine()

	if err := engine.Select("midi", at(10, 0, 0)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	// Removal happens inside the pre-draw window, when adding would be
	// refused. Deselecting must still work so the user can recover.
	selected, err := engine.Toggle("midi", at(13, 28, 0))
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if selected {
		t.Fatal("Toggle should have removed the draw")
	}
	if got := state.SelectedDraw(); got != "" {
		t.Fatalf("current draw = %q, want cleared", got)
	}
}

func TestToggleAddGatedOnEligibility(t *testing.T) {
	engine, _ := newTestEngine()

	if _, err := engine.Toggle("ferme", at(10, 0, 0)); !errors.Is(err, ErrDrawNotEligible) {
		t.Fatalf("Toggle error = %v, want ErrDrawNotEligible", err)
	}

	selected, err := engine.Toggle("soir", at(10, 0, 0))
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if !selected {
		t.Fatal("Toggle should have added the draw")
	}
}

func TestValidateContinueCatchesStaleSelection(t *testing.T) {
	engine, _ := newTestEngine()

	// Eligible at selection time.
	if err := engine.Select("midi", at(10, 0, 0)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	// The clock has since moved into the pre-draw window.
	err := engine.ValidateContinue(at(13, 28, 0))
	if !errors.Is(err, ErrDrawNotEligible) {
		t.Fatalf("ValidateContinue error = %v, want ErrDrawNotEligible", err)
	}
	if !strings.Contains(err.Error(), "Miami Midi") {
		t.Fatalf("error must name the offending draw, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "Tirage imminent") {
		t.Fatalf("error must carry the badge reason, got %q", err.Error())
	}
}

func TestValidateContinueEmptySelection(t *testing.T) {
	engine, _ := newTestEngine()
	if err := engine.ValidateContinue(at(10, 0, 0)); err == nil {
		t.Fatal("ValidateContinue must reject an empty selection")
	}
}

func TestSnapshotMarksSelection(t *testing.T) {
	engine, _ := newTestEngine()
	if err := engine.Select("midi", at(10, 0, 0)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	views := engine.Snapshot(at(10, 0, 0))
	if len(views) != 3 {
		t.Fatalf("snapshot size = %d, want 3", len(views))
	}
	for _, v := range views {
		switch v.ID {
		case "midi":
			if !v.Selected || !v.Eligible {
				t.Fatalf("midi view = %+v, want selected and eligible", v)
			}
		case "ferme":
			if v.Eligible {
				t.Fatalf("ferme view = %+v, want ineligible", v)
			}
			if v.Badge != "Fermé" {
				t.Fatalf("ferme badge = %q, want Fermé", v.Badge)
			}
		}
	}
}
