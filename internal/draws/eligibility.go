// Package draws decides whether a draw currently accepts bets and
// keeps the multi-draw selection honest. Eligibility is derived state:
// it is recomputed from the wall clock and the cached draw table on
// every tick, never stored.
package draws

import (
	"fmt"
	"time"

	"github.com/ayitek/borlette-pos/internal/appstate"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/types"
	"go.uber.org/zap"
)

// PreDrawBlock is how long before a draw's scheduled time new bets are
// refused.
const PreDrawBlock = 3 * time.Minute

// Status is the derived eligibility of one draw. The two blocking
// reasons are independent bits, not mutually exclusive states, and the
// UI shows a distinct badge for each.
type Status struct {
	AdminBlocked bool `json:"admin_blocked"`
	TimeBlocked  bool `json:"time_blocked"`
}

// Eligible reports whether new bets may be placed.
func (s Status) Eligible() bool {
	return !s.AdminBlocked && !s.TimeBlocked
}

// Badge returns the user-facing badge text for an ineligible draw.
func (s Status) Badge() string {
	switch {
	case s.AdminBlocked:
		return "Fermé"
	case s.TimeBlocked:
		return "Tirage imminent"
	default:
		return ""
	}
}

// statusUnknown is what an unknown or malformed draw resolves to:
// blocked on both bits, never a fault.
var statusUnknown = Status{AdminBlocked: true, TimeBlocked: true}

// NextOccurrence computes the next occurrence of a "15:04" time-of-day
// at or after now: today if the time has not yet passed, else tomorrow.
func NextOccurrence(timeOfDay string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid draw time %q: %w", timeOfDay, err)
	}

	occ := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if occ.Before(now) {
		occ = occ.AddDate(0, 0, 1)
	}
	return occ, nil
}

// IsBlocked reports whether now falls inside the half-open window
// [occurrence-PreDrawBlock, occurrence) before the next occurrence of
// the draw time. Pure function of its inputs; safe to call every tick.
func IsBlocked(timeOfDay string, now time.Time) bool {
	occ, err := NextOccurrence(timeOfDay, now)
	if err != nil {
		// Malformed schedule data fails closed.
		return true
	}
	windowStart := occ.Add(-PreDrawBlock)
	return !now.Before(windowStart) && now.Before(occ)
}

// StatusOf derives the eligibility of a draw.
func StatusOf(d types.Draw, now time.Time) Status {
	return Status{
		AdminBlocked: !d.Active,
		TimeBlocked:  IsBlocked(d.Time, now),
	}
}

// Engine answers eligibility questions against the shared state
// container's draw table.
type Engine struct {
	state *appstate.State
	loc   *time.Location
}

func NewEngine(state *appstate.State, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{state: state, loc: loc}
}

// Now returns the current time in the POS timezone.
func (e *Engine) Now() time.Time {
	return time.Now().In(e.loc)
}

// StatusByID resolves a draw id to its eligibility. A draw missing
// from the current table (a stale cached id, typically) fails closed
// rather than faulting.
func (e *Engine) StatusByID(id string, now time.Time) Status {
	d, ok := e.state.DrawByID(id)
	if !ok {
		logger.Warn("Eligibility lookup for unknown draw id, treating as blocked",
			zap.String("draw_id", id))
		return statusUnknown
	}
	return StatusOf(d, now)
}
