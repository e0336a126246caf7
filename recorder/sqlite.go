package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// SQLiteRecorder persists ledger history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads do not block ledger writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ledger_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			event_type  TEXT NOT NULL,
			owner       TEXT,
			record_idx  INTEGER,
			amount      TEXT,
			user_payout TEXT,
			dev_fee     TEXT,
			attributes  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON ledger_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_events_owner ON ledger_events(owner)`,

		`CREATE TABLE IF NOT EXISTS valuations (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			open_position_value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_valuations_ts ON valuations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordEvent stores one ledger event. Common fields get their own columns;
// the full attribute map is kept as JSON for anything the schema does not
// break out.
func (r *SQLiteRecorder) RecordEvent(event types.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attrs, err := json.Marshal(event.Attributes)
	if err != nil {
		return fmt.Errorf("marshal attributes: %w", err)
	}

	var idx interface{}
	if v := event.Attributes["index"]; v != "" {
		idx = v
	}

	_, err = r.db.Exec(`INSERT INTO ledger_events
		(timestamp, event_type, owner, record_idx, amount, user_payout, dev_fee, attributes)
		VALUES (?,?,?,?,?,?,?,?)`,
		event.Timestamp, event.Type,
		event.Attributes["owner"], idx,
		event.Attributes["amount"],
		event.Attributes["user_payout"],
		event.Attributes["dev_fee"],
		string(attrs),
	)
	return err
}

// RecordValuation stores one valuation snapshot.
func (r *SQLiteRecorder) RecordValuation(snap *ValuationSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.Timestamp
	if ts == 0 {
		ts = time.Now().Unix()
	}
	_, err := r.db.Exec(`INSERT INTO valuations (timestamp, open_position_value) VALUES (?,?)`,
		ts, snap.OpenPositionValue)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
