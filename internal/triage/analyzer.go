package triage

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/observability"
)

// Analysis is the combined output of every scorer for one message.
type Analysis struct {
	Crisis      domain.CrisisAssessment `json:"crisis"`
	Screening   domain.ScreeningResult  `json:"screening"`
	Emotion     domain.EmotionResult    `json:"emotion"`
	Intensity   domain.IntensityResult  `json:"intensity"`
	Complexity  domain.ComplexityResult `json:"complexity"`
	Regulation  domain.RegulationResult `json:"regulation"`
	Context     domain.ContextResult    `json:"context"`
	Distortions domain.DistortionResult `json:"distortions"`
	Sentiment   domain.SentimentResult  `json:"sentiment"`
	Signals     []domain.SignalScore    `json:"signals"`

	// Degraded names the scorers that failed and were replaced by defaults.
	Degraded []string `json:"degraded,omitempty"`
}

// Emotional reduces the analysis to the aggregator's input.
func (a Analysis) Emotional() domain.EmotionalAnalysis {
	return domain.EmotionalAnalysis{
		Sentiment:       a.Sentiment.Label,
		SentimentScore:  a.Sentiment.Score,
		DominantEmotion: a.Emotion.DominantEmotion,
		EmotionScore:    a.Emotion.EmotionScore,
		Emotions:        NewEmotionScorer().Present(a.Emotion),
	}
}

// Analyzer fans a message out to every scorer and gathers the results.
type Analyzer struct {
	crisis     *CrisisScorer
	screening  *ScreeningScorer
	emotion    *EmotionScorer
	intensity  IntensityScorer
	complexity ComplexityScorer
	regulation RegulationScorer
	context    ContextScorer
	distortion DistortionScorer
	sentiment  SentimentScorer

	extra []TextClassifier
}

type Option func(*Analyzer)

// WithClassifier registers an additional classifier whose signal is
// appended to Analysis.Signals.
func WithClassifier(c TextClassifier) Option {
	return func(a *Analyzer) { a.extra = append(a.extra, c) }
}

// WithCrisisScorer replaces the default crisis scorer.
func WithCrisisScorer(s *CrisisScorer) Option {
	return func(a *Analyzer) { a.crisis = s }
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		crisis:    NewCrisisScorer(),
		screening: NewScreeningScorer(),
		emotion:   NewEmotionScorer(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Classifiers lists every scorer behind the TextClassifier interface.
func (a *Analyzer) Classifiers() []TextClassifier {
	base := []TextClassifier{
		a.crisis, a.screening, a.emotion, a.intensity, a.complexity,
		a.regulation, a.context, a.distortion, a.sentiment,
	}
	return append(base, a.extra...)
}

func neutralSignal(c TextClassifier) domain.SignalScore {
	return domain.SignalScore{Category: c.Name(), Evidence: []string{}}
}

type scorerTask struct {
	name     string
	run      func()
	fallback func()
}

// Analyze never fails. A scorer that panics is logged and its result is
// replaced by a neutral default so the aggregator always gets a full input.
func (a *Analyzer) Analyze(ctx context.Context, text string) Analysis {
	log := observability.LoggerFromContext(ctx)

	var out Analysis
	base := len(a.Classifiers()) - len(a.extra)
	out.Signals = make([]domain.SignalScore, base+len(a.extra))
	sig := out.Signals

	// Each built-in scorer runs once; its signal is derived from the typed
	// result in the same task.
	tasks := []scorerTask{
		{"crisis", func() {
			out.Crisis = a.crisis.Assess(text)
			sig[0] = a.crisis.Signal(out.Crisis)
		}, func() {
			out.Crisis = NeutralCrisis()
			sig[0] = neutralSignal(a.crisis)
		}},
		{"screening", func() {
			out.Screening = a.screening.Screen(text)
			sig[1] = a.screening.Signal(out.Screening)
		}, func() {
			out.Screening = NeutralScreening()
			sig[1] = neutralSignal(a.screening)
		}},
		{"emotion", func() {
			out.Emotion = a.emotion.Identify(text)
			sig[2] = a.emotion.Signal(out.Emotion)
		}, func() {
			out.Emotion = NeutralEmotion()
			sig[2] = neutralSignal(a.emotion)
		}},
		{"intensity", func() {
			out.Intensity = a.intensity.Measure(text)
			sig[3] = a.intensity.Signal(out.Intensity)
		}, func() {
			out.Intensity = domain.IntensityResult{Level: "low"}
			sig[3] = neutralSignal(a.intensity)
		}},
		{"complexity", func() {
			out.Complexity = a.complexity.Measure(text)
			sig[4] = a.complexity.Signal(out.Complexity)
		}, func() {
			out.Complexity = domain.ComplexityResult{Level: "low"}
			sig[4] = neutralSignal(a.complexity)
		}},
		{"regulation", func() {
			out.Regulation = a.regulation.Measure(text)
			sig[5] = a.regulation.Signal(out.Regulation)
		}, func() {
			out.Regulation = domain.RegulationResult{Matches: map[string][]string{}, Level: "needs_support"}
			sig[5] = neutralSignal(a.regulation)
		}},
		{"context", func() {
			out.Context = a.context.Topics(text)
			sig[6] = a.context.Signal(out.Context)
		}, func() {
			out.Context = domain.ContextResult{Topics: []string{}}
			sig[6] = neutralSignal(a.context)
		}},
		{"distortion", func() {
			out.Distortions = a.distortion.Detect(text)
			sig[7] = a.distortion.Signal(out.Distortions)
		}, func() {
			out.Distortions = domain.DistortionResult{Distortions: map[string][]string{}}
			sig[7] = neutralSignal(a.distortion)
		}},
		{"sentiment", func() {
			out.Sentiment = a.sentiment.Analyze(text)
			sig[8] = a.sentiment.Signal(out.Sentiment)
		}, func() {
			out.Sentiment = NeutralSentiment()
			sig[8] = neutralSignal(a.sentiment)
		}},
	}
	for i, c := range a.extra {
		tasks = append(tasks, scorerTask{
			name:     "signal:" + c.Name(),
			run:      func() { sig[base+i] = c.Classify(text) },
			fallback: func() { sig[base+i] = neutralSignal(c) },
		})
	}

	var mu sync.Mutex
	addDegraded := func(name string) {
		mu.Lock()
		out.Degraded = append(out.Degraded, name)
		mu.Unlock()
	}

	var eg errgroup.Group
	for _, t := range tasks {
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Warn("scorer failed, using neutral default",
						"scorer", t.name,
						"error", fmt.Sprint(r))
					t.fallback()
					addDegraded(t.name)
				}
			}()
			t.run()
			return nil
		})
	}
	_ = eg.Wait()
	slices.Sort(out.Degraded)

	return out
}
