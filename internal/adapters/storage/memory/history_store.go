package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// HistoryStore keeps mental state snapshots per user. Each user has its own
// lock so appends for different users never contend.
type HistoryStore struct {
	mu    sync.Mutex
	users map[domain.UserID]*userHistory
}

type userHistory struct {
	mu        sync.RWMutex
	snapshots []domain.MentalStateSnapshot
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{users: make(map[domain.UserID]*userHistory)}
}

// lookup returns nil for a user with no snapshots.
func (s *HistoryStore) lookup(id domain.UserID) *userHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *HistoryStore) user(id domain.UserID) *userHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.users[id]
	if !ok {
		h = &userHistory{}
		s.users[id] = h
	}
	return h
}

func (s *HistoryStore) AppendSnapshot(ctx context.Context, userID domain.UserID, snap *domain.MentalStateSnapshot) (domain.SnapshotID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cp := *snap
	cp.UserID = userID
	if cp.ID == "" {
		cp.ID = domain.SnapshotID(uuid.NewString())
	}
	cp.WarningSigns = slices.Clone(snap.WarningSigns)
	cp.PositiveIndicators = slices.Clone(snap.PositiveIndicators)

	h := s.user(userID)
	h.mu.Lock()
	h.snapshots = append(h.snapshots, cp)
	h.mu.Unlock()

	return cp.ID, nil
}

func (s *HistoryStore) ReadRecent(ctx context.Context, userID domain.UserID, since time.Time) ([]domain.MentalStateSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := s.lookup(userID)
	if h == nil {
		return nil, nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []domain.MentalStateSnapshot
	for _, snap := range h.snapshots {
		if snap.Timestamp.Before(since) {
			continue
		}
		snap.WarningSigns = slices.Clone(snap.WarningSigns)
		snap.PositiveIndicators = slices.Clone(snap.PositiveIndicators)
		out = append(out, snap)
	}

	slices.SortStableFunc(out, func(a, b domain.MentalStateSnapshot) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out, nil
}
