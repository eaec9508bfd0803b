// Package backup turns a family snapshot into a passphrase-protected
// archive and back. The archive is what a parent downloads before
// switching devices.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/familyquest/internal/model"
)

// FormatVersion is written into every archive. Import refuses newer ones.
const FormatVersion = 1

var (
	ErrPassphrase = errors.New("backup: passphrase is required")
	ErrFormat     = errors.New("backup: not a family snapshot archive")
	ErrVersion    = errors.New("backup: archive was written by a newer version")
)

type envelope struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Snapshot   model.Snapshot `json:"snapshot"`
}

// Export serializes snap and encrypts it with passphrase.
func Export(snap model.Snapshot, passphrase string, now time.Time) ([]byte, error) {
	if strings.TrimSpace(passphrase) == "" {
		return nil, ErrPassphrase
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}

	plaintext, err := json.Marshal(envelope{
		Version:    FormatVersion,
		ExportedAt: now.UTC(),
		Snapshot:   snap,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal archive: %w", err)
	}
	return seal(plaintext, passphrase)
}

// Import decrypts data and returns the snapshot it holds. The snapshot is
// returned as stored; callers run their load migrations on it.
func Import(data []byte, passphrase string) (model.Snapshot, error) {
	if strings.TrimSpace(passphrase) == "" {
		return model.Snapshot{}, ErrPassphrase
	}
	plaintext, err := open(data, passphrase)
	if err != nil {
		return model.Snapshot{}, err
	}

	var env envelope
	if err := json.Unmarshal(plaintext, &env); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if env.Version == 0 || env.Snapshot.Family.ID == "" {
		return model.Snapshot{}, ErrFormat
	}
	if env.Version > FormatVersion {
		return model.Snapshot{}, fmt.Errorf("%w: version %d", ErrVersion, env.Version)
	}
	return env.Snapshot, nil
}
