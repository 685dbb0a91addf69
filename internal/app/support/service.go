// Package support runs a user message through triage, mental state
// aggregation, strategy selection and persona dispatch, and assembles the
// reply with wellness and community suggestions.
package support

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/PabloGalante/farum-support/internal/app/agentflow"
	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
	"github.com/PabloGalante/farum-support/internal/observability"
	"github.com/PabloGalante/farum-support/internal/persona"
	"github.com/PabloGalante/farum-support/internal/personalization"
	"github.com/PabloGalante/farum-support/internal/recommend"
	"github.com/PabloGalante/farum-support/internal/strategy"
	"github.com/PabloGalante/farum-support/internal/triage"
)

const (
	// DefaultSessionTimeout closes a session after this much inactivity.
	DefaultSessionTimeout = 30 * time.Minute

	// AnonymousUser is used when a request carries no user id.
	AnonymousUser domain.UserID = "anonymous"

	historyTurns = 10
)

// Deps are the collaborators a Service needs.
type Deps struct {
	Sessions   domain.SessionStore
	Messages   domain.MessageStore
	History    domain.HistoryStore
	Registry   *persona.Registry
	Dispatcher *persona.Dispatcher
}

type Service struct {
	sessions domain.SessionStore
	messages domain.MessageStore
	history  domain.HistoryStore

	analyzer   *triage.Analyzer
	aggregator *mentalstate.Aggregator
	crews      *agentflow.Builder
	cache      *agentflow.CrewCache
	wellness   *recommend.Wellness
	community  *recommend.Matcher

	locks          *userLocks
	sessionTimeout time.Duration
	now            func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithSessionTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sessionTimeout = d
		}
	}
}

func WithAnalyzer(a *triage.Analyzer) Option {
	return func(s *Service) { s.analyzer = a }
}

func NewService(deps Deps, opts ...Option) *Service {
	s := &Service{
		sessions:       deps.Sessions,
		messages:       deps.Messages,
		history:        deps.History,
		analyzer:       triage.NewAnalyzer(),
		aggregator:     mentalstate.NewAggregator(),
		crews:          agentflow.NewBuilder(deps.Registry, deps.Dispatcher),
		cache:          agentflow.NewCrewCache(),
		wellness:       recommend.NewWellness(),
		locks:          newUserLocks(),
		sessionTimeout: DefaultSessionTimeout,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.community = recommend.NewMatcher(s.now)
	return s
}

// Process handles one user message end to end.
//
// The mental state snapshot is persisted as soon as it is computed. If ctx
// ends before the reply is ready nothing else is written and ctx's error is
// returned together with the assessed output, whose Response is the
// fallback text.
func (s *Service) Process(ctx context.Context, in ProcessInput) (*ProcessOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", domain.ErrInvalidInput)
	}
	userID := in.UserID
	if userID == "" {
		userID = AnonymousUser
	}

	ctx = observability.WithUserID(ctx, string(userID))
	log := observability.LoggerFromContext(ctx)
	log.Info("processing message", "length", len(message))

	now := s.now()
	out := &ProcessOutput{}

	analysis := s.analyzer.Analyze(ctx, message)
	emotional := analysis.Emotional()

	snap, history := s.assess(ctx, userID, message, now, emotional, out)

	sel := strategy.FromSnapshot(analysis.Crisis.RiskLevel, emotional.DominantEmotion, snap)
	chosen, rule := strategy.Explain(sel)
	crisis := chosen == domain.StrategyCrisisIntervention
	log.Info("strategy selected", "strategy", chosen, "rule", rule, "crisis_level", analysis.Crisis.RiskLevel)

	session, fresh, err := s.resolveSession(ctx, userID, in.SessionContext, now)
	if err != nil {
		log.Warn("session lookup failed", "error", err)
		out.Warnings = append(out.Warnings, "session history unavailable")
	}

	out.CrisisLevel = analysis.Crisis.RiskLevel
	out.MentalStateScore = snap.OverallScore
	out.MentalState = snap
	out.SafetyStatus = safetyStatus(analysis.Crisis, crisis)
	out.Strategy = chosen
	out.EmotionalState = emotionalState(analysis)
	out.SessionInsights = mentalstate.BuildInsights(append(slices.Clone(history), snap), now)
	out.SessionID = session.ID

	prefs := wellnessPreferences(in.SessionContext)
	community := communityRequest(in.SessionContext, snap, emotional.DominantEmotion)

	if crisis {
		log.Warn("crisis detected, skipping persona dispatch",
			"urgency", analysis.Crisis.Urgency,
			"emergency_services", analysis.Crisis.EmergencyServicesFlag)

		out.ResponseType = ResponseCrisis
		out.Response = CrisisResponse
		out.Urgency = string(analysis.Crisis.Urgency)
		out.ImmediateResources = CrisisResources()
		out.WellnessSuggestions = recommend.EmergencyCoping()
		out.CommunitySuggestions = s.community.Suggest(community)
	} else {
		out.ResponseType = ResponseSupport

		turns := s.recentTurns(ctx, session)
		fields := s.promptFields(message, in.SessionContext, analysis, snap, chosen, history)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			reply, err := s.reply(gctx, userID, session.ID, chosen, message, fields, turns)
			if err != nil {
				return err
			}
			out.Response = reply.Reply
			out.Persona = reply.Persona
			out.Fallback = reply.Fallback
			return nil
		})
		g.Go(func() error {
			out.WellnessSuggestions = s.wellness.Suggest(snap, prefs)
			out.CommunitySuggestions = s.community.Suggest(community)
			return nil
		})
		if err := g.Wait(); err != nil {
			return abandoned(ctx, out, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return abandoned(ctx, out, err)
	}

	s.record(ctx, session, fresh, userID, message, out)

	log.Info("message processed",
		"response_type", out.ResponseType,
		"strategy", out.Strategy,
		"fallback", out.Fallback,
		"warnings", len(out.Warnings))

	return out, nil
}

// abandoned keeps the safety assessment in out so callers can still report it.
func abandoned(ctx context.Context, out *ProcessOutput, err error) (*ProcessOutput, error) {
	observability.LoggerFromContext(ctx).Warn("message abandoned",
		"error", err,
		"crisis_level", out.CrisisLevel)

	if out.ResponseType != ResponseCrisis {
		out.Response = persona.FallbackResponse
		out.Persona = ""
		out.Fallback = true
	}
	return out, err
}

// assess reads the user's history, aggregates and appends the new snapshot
// under the user's lock. A failing store degrades to an empty history.
func (s *Service) assess(
	ctx context.Context,
	userID domain.UserID,
	message string,
	now time.Time,
	emotional domain.EmotionalAnalysis,
	out *ProcessOutput,
) (domain.MentalStateSnapshot, []domain.MentalStateSnapshot) {
	log := observability.LoggerFromContext(ctx)

	unlock := s.locks.lock(userID)
	defer unlock()

	history, err := s.history.ReadRecent(ctx, userID, now.Add(-mentalstate.HistoryWindow))
	if err != nil {
		log.Error("failed to read history", "error", errors.Join(domain.ErrPersistence, err))
		out.Warnings = append(out.Warnings, "mental state history unavailable; trend uses this message only")
		history = nil
	}

	snap := s.aggregator.Assess(mentalstate.Input{
		UserID:    userID,
		Message:   message,
		At:        now,
		Emotional: emotional,
		History:   history,
	})

	id, err := s.history.AppendSnapshot(ctx, userID, &snap)
	if err != nil {
		log.Error("failed to append snapshot", "error", errors.Join(domain.ErrPersistence, err))
		out.Warnings = append(out.Warnings, "mental state snapshot was not saved")
	} else {
		snap.ID = id
	}

	return snap, history
}

func (s *Service) reply(
	ctx context.Context,
	userID domain.UserID,
	sessionID domain.SessionID,
	chosen domain.Strategy,
	message string,
	fields persona.Fields,
	turns []*domain.Message,
) (agentflow.AgentOutput, error) {
	crew, err := s.cache.Get(string(chosen), userID, func() (*agentflow.Orchestrator, error) {
		return s.crews.ForStrategy(chosen)
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to build crew", "strategy", chosen, "error", err)
		return agentflow.AgentOutput{Reply: persona.FallbackResponse, Fallback: true}, nil
	}

	return crew.Run(ctx, agentflow.AgentInput{
		UserID:    userID,
		SessionID: sessionID,
		Message:   message,
		Fields:    fields,
		History:   turns,
	})
}

func (s *Service) promptFields(
	message string,
	sessionContext map[string]any,
	a triage.Analysis,
	snap domain.MentalStateSnapshot,
	chosen domain.Strategy,
	history []domain.MentalStateSnapshot,
) persona.Fields {
	profile := personalization.ForMessage(message, chosen)
	return persona.Fields{
		persona.FieldMessage:              message,
		persona.FieldUserContext:          userContext(sessionContext, snap, len(history)),
		persona.FieldDominantEmotion:      a.Emotion.DominantEmotion,
		persona.FieldDepressionIndicators: persona.Score(snap.DepressionIndicators),
		persona.FieldAnxietyIndicators:    persona.Score(snap.AnxietyIndicators),
		persona.FieldStressIndicators:     persona.Score(snap.StressIndicators),
		persona.FieldEnergyLevel:          persona.Score(snap.EnergyLevel),
		persona.FieldMotivationLevel:      persona.Score(snap.MotivationLevel),
		persona.FieldDistortions:          persona.List(triage.DistortionScorer{}.Names(a.Distortions)),
		persona.FieldTherapeuticGoals:     persona.List(profile.Goals),
		persona.FieldCommunicationStyle:   profile.Style.String(),
		persona.FieldTrend:                string(snap.Trend),
	}
}

// userContext summarises what is known about the user for a prompt.
func userContext(sessionContext map[string]any, snap domain.MentalStateSnapshot, prior int) string {
	parts := []string{
		fmt.Sprintf("wellbeing score %s", persona.Score(snap.OverallScore)),
		fmt.Sprintf("trend %s over %d earlier check-ins", snap.Trend, prior),
		fmt.Sprintf("current struggles: %s", persona.List(mentalstate.CurrentStruggles(snap))),
	}
	if len(snap.WarningSigns) > 0 {
		parts = append(parts, "warning signs: "+persona.List(snap.WarningSigns))
	}
	if len(snap.PositiveIndicators) > 0 {
		parts = append(parts, "positive indicators: "+persona.List(snap.PositiveIndicators))
	}

	keys := make([]string, 0, len(sessionContext))
	for k, v := range sessionContext {
		if _, ok := v.(string); ok && k != sessionIDKey {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, sessionContext[k]))
	}

	return strings.Join(parts, "; ")
}

// recentTurns loads the last conversation turns of session for the model.
func (s *Service) recentTurns(ctx context.Context, session *domain.Session) []*domain.Message {
	if session.MessageCount == 0 {
		return nil
	}
	turns, err := s.messages.GetMessagesBySession(ctx, session.ID, historyTurns)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("failed to load conversation turns", "error", err)
		return nil
	}
	return turns
}

// record appends the exchange to the session. Failures become warnings.
func (s *Service) record(ctx context.Context, session *domain.Session, fresh bool, userID domain.UserID, message string, out *ProcessOutput) {
	log := observability.LoggerFromContext(ctx).With("session_id", session.ID)
	now := s.now()

	fail := func(what string, err error) {
		log.Error("failed to "+what, "error", errors.Join(domain.ErrPersistence, err))
		out.Warnings = append(out.Warnings, "conversation was not saved")
	}

	if fresh {
		if err := s.sessions.CreateSession(ctx, session); err != nil && !errors.Is(err, domain.ErrSessionExists) {
			fail("create session", err)
			return
		}
	}

	userMsg := &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		SessionID: session.ID,
		UserID:    userID,
		Author:    domain.RoleUser,
		Text:      message,
		CreatedAt: now,
	}
	agentMsg := &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		SessionID: session.ID,
		UserID:    userID,
		Author:    domain.RoleAgent,
		Text:      out.Response,
		CreatedAt: now.Add(time.Microsecond),
		Strategy:  out.Strategy,
		Persona:   out.Persona,
		Fallback:  out.Fallback,
	}

	for _, m := range []*domain.Message{userMsg, agentMsg} {
		if err := s.messages.AppendMessage(ctx, m); err != nil {
			fail("append message", err)
			return
		}
	}

	session.UpdatedAt = now
	session.MessageCount += 2
	session.LastStrategy = out.Strategy
	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		fail("update session", err)
	}
}
