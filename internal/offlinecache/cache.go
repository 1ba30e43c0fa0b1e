// Package offlinecache keeps the last good copy of backend read
// responses so a terminal with a flaky uplink can keep rendering.
// API paths are served network-first with this cache as fallback;
// static assets are the webserver's concern and stay cache-first on
// disk. Entries are keyed by cache version so a deploy starts clean.
package offlinecache

import (
	"database/sql"
	"strings"

	"github.com/ayitek/borlette-pos/internal/env"
	"github.com/ayitek/borlette-pos/internal/localdb"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"go.uber.org/zap"
)

// Class is the caching strategy a request path maps to.
type Class int

const (
	ClassStatic Class = iota // cache-first, background revalidate
	ClassAPI                 // network-first, cache fallback
)

// Classify buckets a request path by prefix.
func Classify(path string) Class {
	if strings.HasPrefix(path, "/api/") {
		return ClassAPI
	}
	return ClassStatic
}

// Put stores the payload for a backend path under the current cache
// version, replacing any previous copy.
func Put(path string, payload []byte) error {
	db := localdb.GetDB()
	if db == nil {
		return sql.ErrConnDone
	}

	_, err := db.Exec(`INSERT INTO api_cache (cache_version, path, payload, stored_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(cache_version, path) DO UPDATE SET
			payload = excluded.payload,
			stored_at = CURRENT_TIMESTAMP`,
		env.Value.CacheVersion, path, payload)
	return err
}

// Get returns the cached payload for a path, if any.
func Get(path string) ([]byte, bool) {
	db := localdb.GetDB()
	if db == nil {
		return nil, false
	}

	var payload []byte
	err := db.QueryRow(`SELECT payload FROM api_cache WHERE cache_version = ? AND path = ?`,
		env.Value.CacheVersion, path).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		logger.Warn("Failed to read offline cache", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return payload, true
}

// PurgePreviousVersions drops every entry written under an older cache
// version. Called once at startup, mirroring a service worker's
// activate step.
func PurgePreviousVersions() error {
	db := localdb.GetDB()
	if db == nil {
		return sql.ErrConnDone
	}

	res, err := db.Exec(`DELETE FROM api_cache WHERE cache_version != ?`, env.Value.CacheVersion)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		logger.Info("Purged offline cache entries from previous versions", zap.Int64("entries", n))
	}
	return nil
}
