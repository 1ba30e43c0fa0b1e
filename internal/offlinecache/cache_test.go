package offlinecache

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ayitek/borlette-pos/internal/env"
	"github.com/ayitek/borlette-pos/internal/localdb"
)

func setupCacheDB(t *testing.T) {
	t.Helper()
	if _, err := localdb.SetupDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("SetupDB returned error: %v", err)
	}
	t.Cleanup(localdb.CloseDB)
	env.Value.CacheVersion = "v1"
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want Class
	}{
		{"/api/draws", ClassAPI},
		{"/api/tickets", ClassAPI},
		{"/", ClassStatic},
		{"/assets/app.js", ClassStatic},
		{"/apiary", ClassStatic},
	}
	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	setupCacheDB(t)

	payload := []byte(`{"draws":[]}`)
	if err := Put("/api/draws", payload); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, ok := Get("/api/draws")
	if !ok {
		t.Fatal("Get missed a just-stored entry")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Get = %s, want %s", got, payload)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	setupCacheDB(t)

	if err := Put("/api/config", []byte(`old`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := Put("/api/config", []byte(`new`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, ok := Get("/api/config")
	if !ok || string(got) != "new" {
		t.Fatalf("Get = %s/%v, want the replacement payload", got, ok)
	}
}

func TestGetMiss(t *testing.T) {
	setupCacheDB(t)

	if _, ok := Get("/api/never-stored"); ok {
		t.Fatal("Get must miss on an unknown path")
	}
}

func TestPurgePreviousVersions(t *testing.T) {
	setupCacheDB(t)

	env.Value.CacheVersion = "v1"
	if err := Put("/api/draws", []byte(`v1-data`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	// Deploy bumps the version; v1 entries are now stale.
	env.Value.CacheVersion = "v2"
	if err := Put("/api/draws", []byte(`v2-data`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := PurgePreviousVersions(); err != nil {
		t.Fatalf("PurgePreviousVersions returned error: %v", err)
	}

	got, ok := Get("/api/draws")
	if !ok || string(got) != "v2-data" {
		t.Fatalf("current-version entry = %s/%v, want v2-data kept", got, ok)
	}

	env.Value.CacheVersion = "v1"
	if _, ok := Get("/api/draws"); ok {
		t.Fatal("previous-version entry must have been purged")
	}
}
