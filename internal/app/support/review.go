package support

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/farum-support/internal/app/agentflow"
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
	"github.com/PabloGalante/farum-support/internal/observability"
	"github.com/PabloGalante/farum-support/internal/persona"
	"github.com/PabloGalante/farum-support/internal/recommend"
	"github.com/PabloGalante/farum-support/internal/strategy"
	"github.com/PabloGalante/farum-support/internal/triage"
)

const reviewRequest = "Please review how I have been doing lately and suggest what to focus on next."

// Insights reports on the user's last 30 days of snapshots.
func (s *Service) Insights(ctx context.Context, userID domain.UserID) (mentalstate.Insights, error) {
	now := s.now()
	history, err := s.history.ReadRecent(ctx, userID, now.Add(-mentalstate.HistoryWindow))
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to read history", "user_id", userID, "error", err)
		return mentalstate.Insights{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return mentalstate.BuildInsights(history, now), nil
}

// Review is the output of the progress review crew.
type Review struct {
	Review   string               `json:"review"`
	Personas []string             `json:"personas"`
	Fallback bool                 `json:"fallback"`
	Insights mentalstate.Insights `json:"insights"`
}

// ReviewProgress asks the progress review crew to summarise the user's
// recent history and propose next steps.
func (s *Service) ReviewProgress(ctx context.Context, userID domain.UserID) (*Review, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	insights, err := s.Insights(ctx, userID)
	if err != nil {
		return nil, err
	}

	crew, err := s.cache.Get(agentflow.CrewProgressReview, userID, s.crews.ProgressReview)
	if err != nil {
		log.Error("failed to build progress review crew", "error", err)
		return nil, err
	}

	out, err := crew.Run(ctx, agentflow.AgentInput{
		UserID:  userID,
		Message: reviewRequest,
		Fields: persona.Fields{
			persona.FieldUserContext: reviewContext(insights),
			persona.FieldTrend:       string(insights.Trend),
		},
	})
	if err != nil {
		return nil, err
	}

	log.Info("progress review completed", "fallback", out.Fallback, "data_points", insights.DataPoints)
	return &Review{
		Review:   out.Reply,
		Personas: crew.Agents(),
		Fallback: out.Fallback,
		Insights: insights,
	}, nil
}

func reviewContext(in mentalstate.Insights) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d check-ins in the last 30 days; ", in.DataPoints)
	fmt.Fprintf(&b, "trend %s; stability %s; average wellbeing %s; ", in.Trend, persona.Score(in.Stability), persona.Score(in.AverageScore))
	fmt.Fprintf(&b, "current struggles: %s; ", persona.List(in.CurrentStruggles))
	fmt.Fprintf(&b, "progress: %s", persona.List(in.ProgressIndicators))
	return b.String()
}

// WellnessPlan is the full wellness catalog filtered for a user.
type WellnessPlan struct {
	Suggested   []recommend.Activity `json:"suggested"`
	Mindfulness []recommend.Activity `json:"mindfulness"`
	Physical    []recommend.Activity `json:"physical"`
	Spiritual   []recommend.Activity `json:"spiritual"`
	Nutrition   []recommend.Activity `json:"nutrition"`
	Travel      []recommend.Activity `json:"travel"`
	Schedule    recommend.Schedule   `json:"daily_schedule"`
	BasedOn     domain.SnapshotID    `json:"based_on,omitempty"`
}

// WellnessSuggestions builds a plan from the user's latest snapshot, or a
// neutral state when the user has no history yet.
func (s *Service) WellnessSuggestions(ctx context.Context, userID domain.UserID, prefs recommend.Preferences) (*WellnessPlan, error) {
	now := s.now()
	history, err := s.history.ReadRecent(ctx, userID, now.Add(-mentalstate.HistoryWindow))
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to read history", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	state := neutralState(userID, now)
	if len(history) > 0 {
		state = history[len(history)-1]
	}

	return &WellnessPlan{
		Suggested:   s.wellness.Suggest(state, prefs),
		Mindfulness: s.wellness.Mindfulness(state.StressIndicators, prefs),
		Physical:    s.wellness.Physical(state.EnergyLevel, prefs.FitnessLevel),
		Spiritual:   s.wellness.Spiritual(prefs),
		Nutrition:   s.wellness.Nutrition(state.MoodIndicators),
		Travel:      s.wellness.Travel(prefs.Budget),
		Schedule:    s.wellness.DailySchedule(state, prefs),
		BasedOn:     state.ID,
	}, nil
}

func neutralState(userID domain.UserID, now time.Time) domain.MentalStateSnapshot {
	return domain.MentalStateSnapshot{
		UserID:               userID,
		Timestamp:            now,
		OverallScore:         0.5,
		DepressionIndicators: 0.5,
		AnxietyIndicators:    0.5,
		StressIndicators:     0.5,
		EnergyLevel:          0.5,
		MotivationLevel:      0.5,
		MoodIndicators:       0.5,
		SocialConnection:     0.5,
		CopingEffectiveness:  0.5,
		Trend:                domain.TrendStable,
		Stability:            0.5,
		InterventionPriority: mentalstate.PriorityFor(0.5),
		WarningSigns:         []string{},
		PositiveIndicators:   []string{},
	}
}

// MatchCommunity runs the community matchers for an explicit request.
func (s *Service) MatchCommunity(req recommend.Request) recommend.Suggestions {
	return s.community.Suggest(req)
}

// ClearResult reports what ClearUser removed.
type ClearResult struct {
	CrewsForgotten  int `json:"crews_forgotten"`
	SessionsDeleted int `json:"sessions_deleted"`
}

// ClearUser drops the user's cached crews and conversation sessions. The
// mental state history is append-only and is kept.
func (s *Service) ClearUser(ctx context.Context, userID domain.UserID) (*ClearResult, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	res := &ClearResult{CrewsForgotten: s.cache.Forget(userID)}

	for {
		sessions, err := s.sessions.ListSessionsByUser(ctx, userID, 100)
		if err != nil {
			log.Error("failed to list sessions", "error", err)
			return res, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if len(sessions) == 0 {
			break
		}
		for _, sess := range sessions {
			if err := s.messages.DeleteMessagesBySession(ctx, sess.ID); err != nil {
				return res, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
			}
			if err := s.sessions.DeleteSession(ctx, sess.ID); err != nil {
				return res, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
			}
			res.SessionsDeleted++
		}
	}

	log.Info("user data cleared", "crews", res.CrewsForgotten, "sessions", res.SessionsDeleted)
	return res, nil
}

// Assessment is the triage result for a text without generation or
// persistence.
type Assessment struct {
	Analysis       triage.Analysis            `json:"analysis"`
	MentalState    domain.MentalStateSnapshot `json:"mental_state"`
	Strategy       domain.Strategy            `json:"strategy"`
	Rule           int                        `json:"rule"`
	CrisisDetected bool                       `json:"crisis_detected"`
}

// Assess runs triage, aggregation and strategy selection on text with an
// empty history.
func (s *Service) Assess(ctx context.Context, text string) Assessment {
	return Assess(ctx, s.analyzer, s.aggregator, text, s.now())
}

// Assess is the stateless pipeline shared by the service and the CLI.
func Assess(ctx context.Context, analyzer *triage.Analyzer, aggregator *mentalstate.Aggregator, text string, now time.Time) Assessment {
	analysis := analyzer.Analyze(ctx, text)
	emotional := analysis.Emotional()

	snap := aggregator.Assess(mentalstate.Input{
		Message:   text,
		At:        now,
		Emotional: emotional,
	})

	chosen, rule := strategy.Explain(strategy.FromSnapshot(analysis.Crisis.RiskLevel, emotional.DominantEmotion, snap))
	return Assessment{
		Analysis:       analysis,
		MentalState:    snap,
		Strategy:       chosen,
		Rule:           rule,
		CrisisDetected: strategy.IsCrisis(analysis.Crisis.RiskLevel),
	}
}
