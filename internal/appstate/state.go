// Package appstate is the single source of truth for session and UI
// state. Every component reads and writes through the container's
// accessors; nothing holds a private copy of draws, tickets or the
// cart, so a write by one handler is immediately visible to the next
// render without a notification mechanism.
package appstate

import (
	"errors"
	"sync"

	"github.com/ayitek/borlette-pos/internal/types"
)

var ErrNotSelected = errors.New("draw not selected")

// State is created once at boot and passed by reference to every
// component that needs it. Handlers and the eligibility ticker run on
// separate goroutines, hence the lock.
type State struct {
	mu sync.RWMutex

	session *types.Session
	config  *types.LotteryConfig

	draws   []types.Draw
	blocked types.BlockedNumbers

	tickets        []types.Ticket
	ticketsSeq     uint64
	ticketsApplied uint64

	winners []types.Winner

	cart          []types.Bet
	selectedDraw  string
	selectedDraws map[string]struct{}
}

func New() *State {
	return &State{
		selectedDraws: make(map[string]struct{}),
	}
}

// --- session ---

func (s *State) SetSession(sess types.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sess
	s.session = &cp
}

// Session returns a copy of the current session, or nil before login.
func (s *State) Session() *types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// --- server-sourced caches ---

func (s *State) SetConfig(cfg types.LotteryConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cfg
	s.config = &cp
}

func (s *State) Config() *types.LotteryConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return nil
	}
	cp := *s.config
	return &cp
}

// SetDraws replaces the draw table wholesale.
func (s *State) SetDraws(draws []types.Draw) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws = append([]types.Draw(nil), draws...)
}

func (s *State) Draws() []types.Draw {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Draw(nil), s.draws...)
}

// DrawByID looks a draw up in the current table. Callers must treat a
// missing draw as blocked, never as an error to dereference through.
func (s *State) DrawByID(id string) (types.Draw, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.draws {
		if d.ID == id {
			return d, true
		}
	}
	return types.Draw{}, false
}

func (s *State) SetBlockedNumbers(b types.BlockedNumbers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = b
}

func (s *State) BlockedNumbers() types.BlockedNumbers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blocked
}

// --- tickets, with stale-response protection ---

// BeginTicketsFetch hands out a sequence token before a ticket list
// request goes out. ApplyTickets rejects results from requests older
// than the newest applied one, so a slow response cannot overwrite
// fresher state.
func (s *State) BeginTicketsFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticketsSeq++
	return s.ticketsSeq
}

// ApplyTickets installs a fetched ticket list. Returns false when the
// result is stale and was discarded.
func (s *State) ApplyTickets(seq uint64, tickets []types.Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.ticketsApplied {
		return false
	}
	s.ticketsApplied = seq
	s.tickets = append([]types.Ticket(nil), tickets...)
	return true
}

func (s *State) Tickets() []types.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Ticket(nil), s.tickets...)
}

// RemoveTicket drops a ticket from the local cache. Only called after
// the gateway confirmed the server-side delete.
func (s *State) RemoveTicket(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tickets[:0]
	for _, t := range s.tickets {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tickets = kept
}

func (s *State) SetWinners(w []types.Winner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.winners = append([]types.Winner(nil), w...)
}

func (s *State) Winners() []types.Winner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Winner(nil), s.winners...)
}

// --- cart ---

func (s *State) AddBet(b types.Bet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append(s.cart, b)
}

func (s *State) Cart() []types.Bet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Bet(nil), s.cart...)
}

func (s *State) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, b := range s.cart {
		total += b.Amount
	}
	return total
}

// ClearCart destroys the cart, after submission or explicit clear.
func (s *State) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// --- draw selection ---

// SelectDraw marks a draw as the current one. It is also added to the
// multi-draw set so the invariant "selectedDraw is a member of
// selectedDraws when both are set" holds by construction.
func (s *State) SelectDraw(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDraw = id
	s.selectedDraws[id] = struct{}{}
}

// ToggleDraw adds or removes a draw from the multi-draw set. Removing
// the current draw clears it, keeping the membership invariant.
func (s *State) ToggleDraw(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selectedDraws[id]; ok {
		delete(s.selectedDraws, id)
		if s.selectedDraw == id {
			s.selectedDraw = ""
		}
		return false
	}
	s.selectedDraws[id] = struct{}{}
	return true
}

func (s *State) SelectedDraw() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDraw
}

func (s *State) SelectedDraws() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.selectedDraws))
	for id := range s.selectedDraws {
		out = append(out, id)
	}
	return out
}

// Clear tears the session down: credentials, caches, cart and
// selection are all erased. Called on logout.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.config = nil
	s.draws = nil
	s.blocked = types.BlockedNumbers{}
	s.tickets = nil
	s.winners = nil
	s.cart = nil
	s.selectedDraw = ""
	s.selectedDraws = make(map[string]struct{})
}
