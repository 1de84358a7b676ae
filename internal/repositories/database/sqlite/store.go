// Package sqlite provides a SQLite-backed implementation of the repository
// ports for single-node deployments and local development.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Store owns the SQLite connection shared by every repository.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath, enables foreign keys and
// applies the schema. ":memory:" is accepted for tests.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serialises writers, so a settlement transaction never
	// interleaves with another one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProducerRepo:   &producerRepository{db: s.db},
		LineItemRepo:   &lineItemRepository{db: s.db},
		SettlementRepo: &settlementRepository{db: s.db},
		UserRepo:       &userRepository{db: s.db},
	}
}

// Timestamps are stored as fixed-width UTC text so that string ordering
// matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func formatNullTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id         TEXT PRIMARY KEY,
    username        TEXT NOT NULL UNIQUE,
    name            TEXT NOT NULL,
    password_hash   TEXT NOT NULL,
    role            TEXT NOT NULL CHECK (role IN ('admin', 'branch_manager', 'producer')),
    producer_id     TEXT,
    branch_ids      TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL,
    created_by      TEXT NOT NULL,
    last_updated_at TEXT NOT NULL,
    last_updated_by TEXT NOT NULL,
    deleted_at      TEXT
);

CREATE TABLE IF NOT EXISTS producers (
    producer_id     TEXT PRIMARY KEY,
    branch_id       TEXT NOT NULL,
    name            TEXT NOT NULL,
    phone           TEXT NOT NULL DEFAULT '',
    location        TEXT NOT NULL DEFAULT '',
    is_active       INTEGER NOT NULL DEFAULT 1,
    created_at      TEXT NOT NULL,
    created_by      TEXT NOT NULL,
    last_updated_at TEXT NOT NULL,
    last_updated_by TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_producers_branch ON producers (branch_id, name);

CREATE TABLE IF NOT EXISTS settlement_batches (
    batch_id          TEXT PRIMARY KEY,
    producer_id       TEXT NOT NULL REFERENCES producers (producer_id),
    total_amount      TEXT NOT NULL,
    settled_amount    TEXT NOT NULL,
    product_count     INTEGER NOT NULL CHECK (product_count > 0),
    proof_image_ref   TEXT NOT NULL CHECK (proof_image_ref <> ''),
    settlement_date   TEXT NOT NULL,
    settlement_method TEXT NOT NULL DEFAULT 'manual',
    notes             TEXT NOT NULL DEFAULT '',
    created_at        TEXT NOT NULL,
    created_by        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_settlement_batches_producer
    ON settlement_batches (producer_id, settlement_date, created_at);

CREATE TABLE IF NOT EXISTS line_items (
    line_item_id        TEXT PRIMARY KEY,
    producer_id         TEXT NOT NULL REFERENCES producers (producer_id),
    name                TEXT NOT NULL,
    category            TEXT NOT NULL DEFAULT '',
    quantity            TEXT NOT NULL,
    unit                TEXT NOT NULL CHECK (unit IN ('kg', 'g', 'l', 'ml', 'pcs', 'box', 'quintal')),
    price_per_unit      TEXT NOT NULL,
    payment_status      TEXT NOT NULL DEFAULT 'unsettled' CHECK (payment_status IN ('unsettled', 'settled')),
    proof_image_ref     TEXT,
    settlement_batch_id TEXT REFERENCES settlement_batches (batch_id),
    created_at          TEXT NOT NULL,
    created_by          TEXT NOT NULL,
    last_updated_at     TEXT NOT NULL,
    last_updated_by     TEXT NOT NULL,
    CHECK (payment_status = 'unsettled' OR proof_image_ref IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_line_items_producer_status ON line_items (producer_id, payment_status, created_at);

CREATE TABLE IF NOT EXISTS settlement_snapshots (
    snapshot_id    TEXT PRIMARY KEY,
    batch_id       TEXT NOT NULL REFERENCES settlement_batches (batch_id) ON DELETE CASCADE,
    line_item_id   TEXT REFERENCES line_items (line_item_id) ON DELETE SET NULL,
    product_name   TEXT NOT NULL,
    quantity       TEXT NOT NULL,
    unit           TEXT NOT NULL,
    price_per_unit TEXT NOT NULL,
    total_amount   TEXT NOT NULL,
    created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_settlement_snapshots_batch ON settlement_snapshots (batch_id);
CREATE UNIQUE INDEX IF NOT EXISTS uq_settlement_snapshots_line_item
    ON settlement_snapshots (line_item_id) WHERE line_item_id IS NOT NULL;
`
