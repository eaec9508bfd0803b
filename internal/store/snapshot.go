package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/familyquest/internal/model"
)

// DefaultKey is the fixed key the family snapshot is stored under.
const DefaultKey = "family_quest_v3"

// SnapshotStore keeps a single serialized snapshot per key. Every Save
// replaces the previous payload in full.
type SnapshotStore struct {
	db     *sql.DB
	key    string
	logger *slog.Logger
}

func NewSnapshotStore(db *sql.DB, key string, logger *slog.Logger) *SnapshotStore {
	if key == "" {
		key = DefaultKey
	}
	return &SnapshotStore{db: db, key: key, logger: logger}
}

// Load returns the last saved snapshot after running the load migrations.
// A missing row, an unparseable payload and a payload without a family
// all yield (nil, nil): the latter two are logged and treated as a first
// run. Only database failures are returned as errors.
func (s *SnapshotStore) Load() (*model.Snapshot, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE key = ?`, s.key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		s.logger.Error("failed to parse stored snapshot, starting empty", "key", s.key, "error", err)
		return nil, nil
	}
	if snap.Family.ID == "" {
		s.logger.Error("stored snapshot has no family, starting empty", "key", s.key, "bytes", len(payload))
		return nil, nil
	}

	snap = Migrate(snap)
	return &snap, nil
}

// Save serializes snap and overwrites whatever was stored under the key.
func (s *SnapshotStore) Save(snap model.Snapshot) error {
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.key, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Clear removes the stored snapshot so the next Load is a first run.
func (s *SnapshotStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
