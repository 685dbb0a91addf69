package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// MoodStore is an in-memory domain.MoodStore for local mode.
type MoodStore struct {
	mu      sync.RWMutex
	entries map[domain.UserID][]*domain.MoodEntry
}

func NewMoodStore() *MoodStore {
	return &MoodStore{entries: make(map[domain.UserID][]*domain.MoodEntry)}
}

func (s *MoodStore) AppendMood(_ context.Context, entry *domain.MoodEntry) error {
	if entry == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = domain.MoodEntryID(uuid.NewString())
	}

	cp := *entry
	s.entries[entry.UserID] = append(s.entries[entry.UserID], &cp)
	return nil
}

func (s *MoodStore) ListMoodsByUser(_ context.Context, userID domain.UserID, since time.Time) ([]*domain.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.MoodEntry{}
	for _, e := range s.entries[userID] {
		if e.CreatedAt.Before(since) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}

	slices.SortStableFunc(out, func(a, b *domain.MoodEntry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}
