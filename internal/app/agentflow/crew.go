package agentflow

import (
	"fmt"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/persona"
)

// CrewProgressReview reviews a user's recent history: the progress tracker
// summarises, then the CBT therapist turns that into next steps.
const CrewProgressReview = "progress_review"

// Builder assembles crews from the persona registry.
type Builder struct {
	registry   *persona.Registry
	dispatcher *persona.Dispatcher
}

func NewBuilder(registry *persona.Registry, dispatcher *persona.Dispatcher) *Builder {
	return &Builder{registry: registry, dispatcher: dispatcher}
}

// ForStrategy builds the single-persona support crew for s.
func (b *Builder) ForStrategy(s domain.Strategy) (*Orchestrator, error) {
	p, err := b.registry.ForStrategy(s)
	if err != nil {
		return nil, err
	}
	return NewOrchestrator(string(s), NewPersonaAgent(p, b.dispatcher)), nil
}

// ProgressReview builds the progress review crew.
func (b *Builder) ProgressReview() (*Orchestrator, error) {
	var agents []Agent
	for _, name := range []string{persona.ProgressTracker, persona.CBTTherapist} {
		p, err := b.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("progress review crew: %w", err)
		}
		agents = append(agents, NewPersonaAgent(p, b.dispatcher))
	}
	return NewOrchestrator(CrewProgressReview, agents...), nil
}
