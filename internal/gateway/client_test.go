package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayitek/borlette-pos/internal/appstate"
	"github.com/ayitek/borlette-pos/internal/env"
	"github.com/ayitek/borlette-pos/internal/localdb"
	"github.com/ayitek/borlette-pos/internal/offlinecache"
	"github.com/ayitek/borlette-pos/internal/types"
)

func newTestClient(baseURL string) (*Client, *appstate.State) {
	state := appstate.New()
	return New(baseURL, state, func() string { return "test-token" }), state
}

func TestFetchDrawsFromBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"draws": []map[string]any{
				{"id": "midi", "name": "Miami Midi", "time": "13:30", "active": true},
				{"id": "soir", "name": "Miami Soir", "time": "21:45"},
			},
		})
	}))
	defer server.Close()

	client, state := newTestClient(server.URL)
	draws, status := client.FetchDraws()

	if status != ReadOK {
		t.Fatalf("status = %v, want ReadOK", status)
	}
	if len(draws) != 2 {
		t.Fatalf("draw count = %d, want 2", len(draws))
	}
	// A draw without an explicit active field defaults to active.
	if !draws[1].Active {
		t.Fatal("draw without active field must default to active")
	}
	if got := state.Draws(); len(got) != 2 {
		t.Fatalf("state cache has %d draws, want 2", len(got))
	}
}

func TestFetchDrawsFallsBackToDefaults(t *testing.T) {
	client, state := newTestClient("http://127.0.0.1:1")
	draws, status := client.FetchDraws()

	if status != ReadFailed {
		t.Fatalf("status = %v, want ReadFailed", status)
	}
	if len(draws) == 0 {
		t.Fatal("failed fetch must fall back to the default schedule")
	}
	if got := state.Draws(); len(got) != len(draws) {
		t.Fatalf("state cache has %d draws, want %d", len(got), len(draws))
	}
}

func TestFetchReportFailureYieldsZeroReport(t *testing.T) {
	client, _ := newTestClient("http://127.0.0.1:1")
	report, status := client.FetchReport()

	if status != ReadFailed {
		t.Fatalf("status = %v, want ReadFailed", status)
	}
	if report != (types.Report{}) {
		t.Fatalf("report = %+v, want zero value", report)
	}
}

func TestWriteBusinessFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "insufficient balance",
		})
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	err := client.MarkWinnerPaid(42)
	if err == nil {
		t.Fatal("business failure inside a 200 response must propagate")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "insufficient balance" {
		t.Fatalf("message = %q, want server message", apiErr.Message)
	}
}

func TestWriteHTTPFailurePropagatesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	_, err := client.CheckWinningTickets()

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", apiErr.Status)
	}
}

func TestDeleteTicketRemovesCacheOnlyOnSuccess(t *testing.T) {
	fail := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "nope", http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client, state := newTestClient(server.URL)
	seq := state.BeginTicketsFetch()
	state.ApplyTickets(seq, []types.Ticket{{ID: 5, Serial: "S5"}})

	if err := client.DeleteTicket(5); err == nil {
		t.Fatal("failed delete must return an error")
	}
	if got := state.Tickets(); len(got) != 1 {
		t.Fatalf("cache after failed delete has %d tickets, want 1", len(got))
	}

	fail = false
	if err := client.DeleteTicket(5); err != nil {
		t.Fatalf("DeleteTicket returned error: %v", err)
	}
	if got := state.Tickets(); len(got) != 0 {
		t.Fatalf("cache after confirmed delete has %d tickets, want 0", len(got))
	}
}

func TestSaveTicketClearsCartAndCachesTickets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientRef string      `json:"client_ref"`
			DrawIDs   []string    `json:"draw_ids"`
			Bets      []types.Bet `json:"bets"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode save request: %v", err)
		}
		if req.ClientRef == "" {
			t.Error("save request must carry a client reference")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"tickets": []map[string]any{
				{"id": 1, "serial": "T1", "draw_id": "midi", "amount": 100.0},
			},
		})
	}))
	defer server.Close()

	client, state := newTestClient(server.URL)
	state.AddBet(types.Bet{DrawID: "midi", GameType: types.GameBorlette, Number: "42", Amount: 100})

	tickets, err := client.SaveTicket(state.Cart(), []string{"midi"})
	if err != nil {
		t.Fatalf("SaveTicket returned error: %v", err)
	}
	if len(tickets) != 1 || tickets[0].Serial != "T1" {
		t.Fatalf("tickets = %+v, want one ticket T1", tickets)
	}
	if got := state.Cart(); len(got) != 0 {
		t.Fatalf("cart after submission has %d bets, want 0", len(got))
	}
	if got := state.Tickets(); len(got) != 1 {
		t.Fatalf("history cache has %d tickets, want 1", len(got))
	}
}

func TestSaveTicketRejectsEmptyCart(t *testing.T) {
	client, _ := newTestClient("http://127.0.0.1:1")
	if _, err := client.SaveTicket(nil, []string{"midi"}); err == nil {
		t.Fatal("empty cart must be rejected before any request")
	}
	if _, err := client.SaveTicket([]types.Bet{{Amount: 1}}, nil); err == nil {
		t.Fatal("empty draw selection must be rejected before any request")
	}
}

func TestGetJSONServesOfflineCacheWhenUnreachable(t *testing.T) {
	if _, err := localdb.SetupDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("SetupDB returned error: %v", err)
	}
	defer localdb.CloseDB()
	env.Value.CacheVersion = "vtest"

	payload := []byte(`{"draws":[{"id":"cached","name":"Cached","time":"13:30"}]}`)
	if err := offlinecache.Put("/api/draws", payload); err != nil {
		t.Fatalf("cache Put returned error: %v", err)
	}

	client, _ := newTestClient("http://127.0.0.1:1")
	draws, status := client.FetchDraws()

	if status != ReadOK {
		t.Fatalf("status = %v, want ReadOK from cache", status)
	}
	if len(draws) != 1 || draws[0].ID != "cached" {
		t.Fatalf("draws = %+v, want the cached entry", draws)
	}
}
