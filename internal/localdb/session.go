package localdb

import (
	"database/sql"
	"fmt"

	"github.com/ayitek/borlette-pos/internal/types"
)

// SaveSession writes the three durable session fields. The table holds
// at most one row; login replaces it.
func SaveSession(s types.Session) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(`INSERT INTO session (id, token, agent_id, agent_name, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			agent_id = excluded.agent_id,
			agent_name = excluded.agent_name,
			updated_at = CURRENT_TIMESTAMP`,
		s.Token, s.AgentID, s.AgentName)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession reads the stored session. Returns (nil, nil) when no
// session has been saved yet.
func GetSession() (*types.Session, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var s types.Session
	err := db.QueryRow(`SELECT token, agent_id, agent_name FROM session WHERE id = 1`).
		Scan(&s.Token, &s.AgentID, &s.AgentName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return &s, nil
}

// ClearSession erases the stored credentials. Called on logout.
func ClearSession() error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if _, err := db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// RecordPrintedTicket appends a print-log entry for a ticket serial.
func RecordPrintedTicket(serial string) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if _, err := db.Exec(`INSERT INTO print_log (ticket_serial) VALUES (?)`, serial); err != nil {
		return fmt.Errorf("failed to record printed ticket: %w", err)
	}
	return nil
}
