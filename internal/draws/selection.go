package draws

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDrawNotEligible is returned when the user tries to select a draw
// that does not currently accept bets. No state change occurs.
var ErrDrawNotEligible = errors.New("draw is not accepting bets")

// Select makes a draw the current one. Selection is validated against
// eligibility at selection time; an ineligible draw is rejected with a
// user-facing notice and the selection set is untouched.
func (e *Engine) Select(id string, now time.Time) error {
	st := e.StatusByID(id, now)
	if !st.Eligible() {
		return fmt.Errorf("%w: %s", ErrDrawNotEligible, st.Badge())
	}
	e.state.SelectDraw(id)
	return nil
}

// Toggle adds or removes a draw from the multi-draw set. Adding is
// gated on eligibility; removing is always allowed, which is how the
// user clears a selection that went stale.
func (e *Engine) Toggle(id string, now time.Time) (selected bool, err error) {
	for _, sel := range e.state.SelectedDraws() {
		if sel == id {
			return e.state.ToggleDraw(id), nil
		}
	}

	st := e.StatusByID(id, now)
	if !st.Eligible() {
		return false, fmt.Errorf("%w: %s", ErrDrawNotEligible, st.Badge())
	}
	return e.state.ToggleDraw(id), nil
}

// ValidateContinue re-checks every selected draw at confirmation time.
// Selections can go stale between selection and continuation: a draw
// that was eligible when picked may have entered its pre-draw window
// or been blocked by the backend since. Each failure is reported with
// a named reason; the user must deselect the offenders to proceed.
func (e *Engine) ValidateContinue(now time.Time) error {
	selected := e.state.SelectedDraws()
	if len(selected) == 0 {
		return errors.New("no draw selected")
	}

	var blocked []string
	for _, id := range selected {
		st := e.StatusByID(id, now)
		if st.Eligible() {
			continue
		}
		name := id
		if d, ok := e.state.DrawByID(id); ok {
			name = d.Name
		}
		blocked = append(blocked, fmt.Sprintf("%s (%s)", name, st.Badge()))
	}

	if len(blocked) > 0 {
		return fmt.Errorf("%w: %s", ErrDrawNotEligible, strings.Join(blocked, ", "))
	}
	return nil
}
