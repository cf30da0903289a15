package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/torchbearer/chronicle/internal/calendar"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - pre-migration
// 1 - initial advances/fired_events schema
const currentSchemaVersion = 1

// History is the durable campaign audit trail. Uses SQLite with WAL
// mode; a single connection avoids SQLITE_BUSY under the engine's
// single-writer model.
type History struct {
	db *sql.DB
}

// Advance is one recorded time advance.
type Advance struct {
	Token    string `json:"token"`
	FromDate string `json:"from_date"`
	FromTime string `json:"from_time"`
	ToDate   string `json:"to_date"`
	ToTime   string `json:"to_time"`
	Minutes  int    `json:"minutes"`
	Reason   string `json:"reason,omitempty"`
}

// FiredEvent is one event firing attributed to an advance.
type FiredEvent struct {
	AdvanceToken string `json:"advance_token"`
	Position     int    `json:"position"`
	EventID      string `json:"event_id"`
	EventName    string `json:"event_name"`
	Priority     int    `json:"priority"`
	Status       string `json:"status"`
}

// HistoryOption configures OpenHistory.
type HistoryOption func(*historyConfig)

type historyConfig struct {
	busyTimeoutMS int
}

// WithBusyTimeout overrides the sqlite busy_timeout, in milliseconds.
// The default of 5000 suits interactive CLI use; tests sharing a file
// database may want it shorter.
func WithBusyTimeout(ms int) HistoryOption {
	return func(c *historyConfig) {
		c.busyTimeoutMS = ms
	}
}

// OpenHistory creates or opens the history database. Safe to call
// repeatedly; pragmas and migrations are idempotent.
func OpenHistory(path string, opts ...HistoryOption) (*History, error) {
	cfg := historyConfig{busyTimeoutMS: 5000}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect history db: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, cfg); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// RecordAdvance appends one advance and its fired events in a single
// transaction. Positions follow the firing order of the slice.
func (h *History) RecordAdvance(ctx context.Context, adv Advance, fired []calendar.Event) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO advances (token, from_date, from_time, to_date, to_time, minutes, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		adv.Token, adv.FromDate, adv.FromTime, adv.ToDate, adv.ToTime, adv.Minutes, adv.Reason)
	if err != nil {
		return fmt.Errorf("insert advance: %w", err)
	}

	for i, ev := range fired {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fired_events (advance_token, position, event_id, event_name, priority, status)
			VALUES (?, ?, ?, ?, ?, ?)`,
			adv.Token, i, ev.ID, ev.Name, ev.Priority, string(ev.Status))
		if err != nil {
			return fmt.Errorf("insert fired event %q: %w", ev.ID, err)
		}
	}
	return tx.Commit()
}

// Advances returns the most recent advances, newest first.
func (h *History) Advances(ctx context.Context, limit int) ([]Advance, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT token, from_date, from_time, to_date, to_time, minutes, reason
		FROM advances ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query advances: %w", err)
	}
	defer rows.Close()

	var out []Advance
	for rows.Next() {
		var a Advance
		if err := rows.Scan(&a.Token, &a.FromDate, &a.FromTime, &a.ToDate, &a.ToTime, &a.Minutes, &a.Reason); err != nil {
			return nil, fmt.Errorf("scan advance: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// FiredEvents returns the events fired by one advance, in firing
// order.
func (h *History) FiredEvents(ctx context.Context, advanceToken string) ([]FiredEvent, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT advance_token, position, event_id, event_name, priority, status
		FROM fired_events WHERE advance_token = ? ORDER BY position`, advanceToken)
	if err != nil {
		return nil, fmt.Errorf("query fired events: %w", err)
	}
	defer rows.Close()

	var out []FiredEvent
	for rows.Next() {
		var f FiredEvent
		if err := rows.Scan(&f.AdvanceToken, &f.Position, &f.EventID, &f.EventName, &f.Priority, &f.Status); err != nil {
			return nil, fmt.Errorf("scan fired event: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB, cfg historyConfig) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeoutMS),
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables and stamps the schema version.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
