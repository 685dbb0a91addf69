package agentflow

import (
	"context"

	"github.com/PabloGalante/farum-support/internal/domain"
	"github.com/PabloGalante/farum-support/internal/observability"
	"github.com/PabloGalante/farum-support/internal/persona"
)

// AgentInput is what one agent in a crew receives.
type AgentInput struct {
	UserID    domain.UserID
	SessionID domain.SessionID

	Message string
	Fields  persona.Fields
	History []*domain.Message

	// Previous is the reply of the agent before this one, empty for the first.
	Previous string
}

type AgentOutput struct {
	Reply    string
	Persona  string
	Attempts int
	Fallback bool
}

// Agent is one step of a crew.
type Agent interface {
	Name() string
	Run(ctx context.Context, in AgentInput) (AgentOutput, error)
}

// PersonaAgent answers in the voice of one persona.
type PersonaAgent struct {
	cfg        domain.PersonaConfig
	dispatcher *persona.Dispatcher
}

func NewPersonaAgent(cfg domain.PersonaConfig, dispatcher *persona.Dispatcher) *PersonaAgent {
	return &PersonaAgent{cfg: cfg, dispatcher: dispatcher}
}

func (a *PersonaAgent) Name() string {
	return a.cfg.Name
}

func (a *PersonaAgent) Run(ctx context.Context, in AgentInput) (AgentOutput, error) {
	log := observability.LoggerFromContext(ctx).With("agent", a.Name())

	fields := in.Fields.Clone()
	fields[persona.FieldMessage] = in.Message
	prompt := persona.Render(a.cfg.PromptTemplate, fields)
	if in.Previous != "" {
		prompt += "\n\nPrevious agent output:\n" + in.Previous
	}

	res, err := a.dispatcher.Generate(ctx, domain.GenerationRequest{
		System:  persona.SystemPrompt(a.cfg),
		Prompt:  prompt,
		History: in.History,
	})
	if err != nil {
		log.Error("persona agent error", "error", err)
		return AgentOutput{}, err
	}

	return AgentOutput{
		Reply:    res.Text,
		Persona:  a.cfg.Name,
		Attempts: res.Attempts,
		Fallback: res.Fallback,
	}, nil
}
