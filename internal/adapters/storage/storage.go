// Package storage wires the persistence backend selected in configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/PabloGalante/farum-support/internal/adapters/storage/firestore"
	"github.com/PabloGalante/farum-support/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-support/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/farum-support/internal/config"
	"github.com/PabloGalante/farum-support/internal/domain"
)

// Stores bundles every persistence port the application needs.
type Stores struct {
	Sessions domain.SessionStore
	Messages domain.MessageStore
	History  domain.HistoryStore
	Moods    domain.MoodStore

	close func() error
}

// Close releases the backend. Safe to call on memory stores.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewMemory returns process-local stores.
func NewMemory() *Stores {
	return &Stores{
		Sessions: memory.NewSessionStore(),
		Messages: memory.NewMessageStore(),
		History:  memory.NewHistoryStore(),
		Moods:    memory.NewMoodStore(),
	}
}

// Open builds the stores for cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Stores{Sessions: db, Messages: db, History: db, Moods: db, close: db.Close}, nil
	case "firestore":
		fs, err := firestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, err
		}
		return &Stores{Sessions: fs, Messages: fs, History: fs, Moods: fs, close: fs.Close}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
