package gateway

import (
	"encoding/json"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeTicketModernFields(t *testing.T) {
	got := normalizeTicket(rawTicket{
		ID:        7,
		Serial:    "ABC123",
		DrawID:    "midi",
		Amount:    floatPtr(150),
		Checked:   true,
		WinAmount: floatPtr(300),
		CreatedAt: "2026-08-28T10:30:00Z",
		Bets:      json.RawMessage(`[{"number":"42","game_type":"borlette","amount":150}]`),
	})

	if got.Serial != "ABC123" || got.DrawID != "midi" {
		t.Fatalf("identity fields = %q/%q, want ABC123/midi", got.Serial, got.DrawID)
	}
	if got.Amount != 150 || got.WinAmount != 300 {
		t.Fatalf("amounts = %v/%v, want 150/300", got.Amount, got.WinAmount)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("timestamp should have parsed")
	}
	if len(got.Bets) != 1 || got.Bets[0].Number != "42" {
		t.Fatalf("bets = %+v, want one entry for 42", got.Bets)
	}
}

func TestNormalizeTicketLegacyFields(t *testing.T) {
	got := normalizeTicket(rawTicket{
		ID:        8,
		Code:      "LEG456",
		Tirage:    "soir",
		Montant:   floatPtr(75),
		Gain:      floatPtr(0),
		CreatedAt: "2026-08-28 14:05:00",
	})

	if got.Serial != "LEG456" {
		t.Fatalf("Serial = %q, want legacy code LEG456", got.Serial)
	}
	if got.DrawID != "soir" {
		t.Fatalf("DrawID = %q, want legacy tirage soir", got.DrawID)
	}
	if got.Amount != 75 {
		t.Fatalf("Amount = %v, want legacy montant 75", got.Amount)
	}
	want := time.Date(2026, 8, 28, 14, 5, 0, 0, time.UTC)
	if !got.CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, want)
	}
}

func TestNormalizeTicketFieldPrecedence(t *testing.T) {
	// When both modern and legacy fields are present, the modern one wins.
	got := normalizeTicket(rawTicket{
		Serial: "NEW",
		Code:   "OLD",
		Amount: floatPtr(10),
		Total:  floatPtr(99),
	})
	if got.Serial != "NEW" {
		t.Fatalf("Serial = %q, want NEW", got.Serial)
	}
	if got.Amount != 10 {
		t.Fatalf("Amount = %v, want 10", got.Amount)
	}
}

func TestParseBetsListAndMapAgree(t *testing.T) {
	list := parseBets(json.RawMessage(`[{"number":"07","amount":25},{"number":"42","amount":50}]`))
	keyed := parseBets(json.RawMessage(`{"07":25,"42":50}`))

	if len(list) != len(keyed) {
		t.Fatalf("shapes disagree on count: list=%d keyed=%d", len(list), len(keyed))
	}
	for i := range list {
		if list[i].Number != keyed[i].Number || list[i].Amount != keyed[i].Amount {
			t.Fatalf("entry %d differs: list=%+v keyed=%+v", i, list[i], keyed[i])
		}
	}
}

func TestParseBetsMapIsSorted(t *testing.T) {
	bets := parseBets(json.RawMessage(`{"90":5,"03":5,"55":5}`))
	if len(bets) != 3 {
		t.Fatalf("bet count = %d, want 3", len(bets))
	}
	for i, want := range []string{"03", "55", "90"} {
		if bets[i].Number != want {
			t.Fatalf("bets[%d] = %q, want %q", i, bets[i].Number, want)
		}
	}
}

func TestParseBetsUnrecognizedShape(t *testing.T) {
	if got := parseBets(json.RawMessage(`"not-bets"`)); got != nil {
		t.Fatalf("unrecognized shape should yield nil, got %+v", got)
	}
	if got := parseBets(nil); got != nil {
		t.Fatalf("empty payload should yield nil, got %+v", got)
	}
}

func TestParseTimestampFallbacks(t *testing.T) {
	if got := parseTimestamp("2026-08-28"); got.IsZero() {
		t.Fatal("date-only timestamp should parse")
	}
	if got := parseTimestamp("yesterday"); !got.IsZero() {
		t.Fatalf("unparseable timestamp should yield zero time, got %v", got)
	}
}
