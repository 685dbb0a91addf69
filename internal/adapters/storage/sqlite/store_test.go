package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/farum-support/internal/domain"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionsAndMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 123, time.UTC)

	sess := &domain.Session{ID: "s1", UserID: "u1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateSession(ctx, sess))
	assert.ErrorIs(t, s.CreateSession(ctx, sess), domain.ErrSessionExists)

	for i, text := range []string{"hello", "hi there", "how are you"} {
		author := domain.RoleUser
		if i%2 == 1 {
			author = domain.RoleAgent
		}
		require.NoError(t, s.AppendMessage(ctx, &domain.Message{
			SessionID: "s1",
			UserID:    "u1",
			Author:    author,
			Text:      text,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			Persona:   "emotional_support",
			Fallback:  i == 1,
		}))
	}

	msgs, err := s.GetMessagesBySession(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi there", msgs[0].Text)
	assert.True(t, msgs[0].Fallback)
	assert.Equal(t, domain.RoleAgent, msgs[0].Author)
	assert.Equal(t, "how are you", msgs[1].Text)
	assert.NotEmpty(t, msgs[0].ID)

	sess.UpdatedAt = now.Add(time.Minute)
	sess.MessageCount = 3
	sess.LastStrategy = domain.StrategyGeneralSupport
	require.NoError(t, s.UpdateSession(ctx, sess))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	if diff := cmp.Diff(sess, got); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.CreateSession(ctx, &domain.Session{ID: "s0", UserID: "u1", CreatedAt: now, UpdatedAt: now}))
	list, err := s.ListSessionsByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.SessionID("s1"), list[0].ID)

	require.NoError(t, s.DeleteMessagesBySession(ctx, "s1"))
	require.NoError(t, s.DeleteSession(ctx, "s1"))
	_, err = s.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, s.UpdateSession(ctx, sess), domain.ErrSessionNotFound)

	msgs, err = s.GetMessagesBySession(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestHistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	want := domain.MentalStateSnapshot{
		Timestamp:            base.AddDate(0, 0, 10),
		OverallScore:         0.42,
		DepressionIndicators: 0.6,
		Trend:                domain.TrendDeclining,
		InterventionPriority: domain.PriorityModerate,
		WarningSigns:         []string{"persistent_low_mood"},
		PositiveIndicators:   []string{},
	}

	_, err := s.AppendSnapshot(ctx, "u1", &domain.MentalStateSnapshot{Timestamp: base, OverallScore: 0.1})
	require.NoError(t, err)
	id, err := s.AppendSnapshot(ctx, "u1", &want)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	_, err = s.AppendSnapshot(ctx, "u2", &domain.MentalStateSnapshot{Timestamp: base.AddDate(0, 0, 10)})
	require.NoError(t, err)

	got, err := s.ReadRecent(ctx, "u1", base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)

	want.ID = id
	want.UserID = "u1"
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	all, err := s.ReadRecent(ctx, "u1", base)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 0.1, all[0].OverallScore)
}

func TestMoods(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendMood(ctx, &domain.MoodEntry{UserID: "u1", Mood: "calm", Intensity: 7, Notes: "walk", CreatedAt: base.AddDate(0, 0, 3)}))
	require.NoError(t, s.AppendMood(ctx, &domain.MoodEntry{UserID: "u1", Mood: "low", Intensity: 3, CreatedAt: base}))

	got, err := s.ListMoodsByUser(ctx, "u1", base)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "low", got[0].Mood)
	assert.Equal(t, "walk", got[1].Notes)
	assert.Equal(t, 7, got[1].Intensity)

	got, err = s.ListMoodsByUser(ctx, "u1", base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
