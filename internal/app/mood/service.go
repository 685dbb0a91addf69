// Package mood records self-reported mood check-ins and summarises them.
package mood

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/observability"
)

const (
	DefaultDays      = 30
	DefaultIntensity = 5
	recentEntries    = 7
)

// Service holds the logic of tracking and reading mood entries
type Service struct {
	store domain.MoodStore
	now   func() time.Time
}

// NewService creates a mood service from a MoodStore
func NewService(store domain.MoodStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// WithClock replaces time.Now, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type TrackInput struct {
	UserID    domain.UserID
	Mood      string
	Intensity int
	Notes     string
}

// Track stores a check-in. Intensity defaults to 5 and must be in 1..10.
func (s *Service) Track(ctx context.Context, in TrackInput) (*domain.MoodEntry, error) {
	mood := strings.TrimSpace(in.Mood)
	if mood == "" {
		return nil, fmt.Errorf("%w: mood is required", domain.ErrInvalidInput)
	}
	intensity := in.Intensity
	if intensity == 0 {
		intensity = DefaultIntensity
	}
	if intensity < 1 || intensity > 10 {
		return nil, fmt.Errorf("%w: intensity must be between 1 and 10", domain.ErrInvalidInput)
	}
	userID := in.UserID
	if userID == "" {
		userID = "anonymous"
	}

	entry := &domain.MoodEntry{
		UserID:    userID,
		Mood:      mood,
		Intensity: intensity,
		Notes:     in.Notes,
		CreatedAt: s.now().UTC(),
	}

	log := observability.LoggerFromContext(ctx).With("user_id", userID, "mood", mood)
	if err := s.store.AppendMood(ctx, entry); err != nil {
		log.Error("failed to track mood", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	log.Info("mood tracked", "intensity", intensity)
	return entry, nil
}

// History returns the entries of the last days days, oldest first.
// If days <= 0, DefaultDays is used.
func (s *Service) History(ctx context.Context, userID domain.UserID, days int) ([]*domain.MoodEntry, error) {
	if days <= 0 {
		days = DefaultDays
	}

	since := s.now().AddDate(0, 0, -days)
	entries, err := s.store.ListMoodsByUser(ctx, userID, since)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list moods", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return entries, nil
}

// Progress summarises every entry of a user.
type Progress struct {
	TotalEntries     int            `json:"total_entries"`
	AverageIntensity float64        `json:"average_intensity"`
	RecentAverage    float64        `json:"recent_average"`
	Trend            domain.Trend   `json:"trend"`
	Distribution     map[string]int `json:"mood_distribution"`
	FirstEntry       time.Time      `json:"first_entry"`
	LatestEntry      time.Time      `json:"latest_entry"`
}

// Progress compares the last seven entries against the overall average.
// It returns nil when the user has no entries.
func (s *Service) Progress(ctx context.Context, userID domain.UserID) (*Progress, error) {
	entries, err := s.store.ListMoodsByUser(ctx, userID, time.Time{})
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list moods", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	recent := entries
	if len(recent) > recentEntries {
		recent = recent[len(recent)-recentEntries:]
	}

	avg := averageIntensity(entries)
	recentAvg := averageIntensity(recent)

	trend := domain.TrendStable
	switch {
	case recentAvg > avg:
		trend = domain.TrendImproving
	case recentAvg < avg:
		trend = domain.TrendDeclining
	}

	dist := make(map[string]int)
	for _, e := range entries {
		dist[e.Mood]++
	}

	return &Progress{
		TotalEntries:     len(entries),
		AverageIntensity: round2(avg),
		RecentAverage:    round2(recentAvg),
		Trend:            trend,
		Distribution:     dist,
		FirstEntry:       entries[0].CreatedAt,
		LatestEntry:      entries[len(entries)-1].CreatedAt,
	}, nil
}

func averageIntensity(entries []*domain.MoodEntry) float64 {
	sum := 0
	for _, e := range entries {
		sum += e.Intensity
	}
	return float64(sum) / float64(len(entries))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
