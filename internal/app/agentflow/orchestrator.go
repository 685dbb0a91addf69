package agentflow

import (
	"context"
	"fmt"
	"time"

	"github.com/PabloGalante/farum-support/internal/observability"
)

// Orchestrator is responsible for running the agents of a crew in sequence.
type Orchestrator struct {
	name   string
	agents []Agent
}

func NewOrchestrator(name string, agents ...Agent) *Orchestrator {
	return &Orchestrator{name: name, agents: agents}
}

func (o *Orchestrator) Name() string { return o.name }

// Agents lists the agent names in run order.
func (o *Orchestrator) Agents() []string {
	out := make([]string, len(o.agents))
	for i, a := range o.agents {
		out[i] = a.Name()
	}
	return out
}

// Run executes the chain of agents sequentially. Each agent sees the
// reply of the one before it. A fallback reply ends the chain early so
// later agents never build on canned text.
func (o *Orchestrator) Run(ctx context.Context, in AgentInput) (AgentOutput, error) {
	if len(o.agents) == 0 {
		return AgentOutput{}, fmt.Errorf("no agents configured in crew %q", o.name)
	}

	log := observability.LoggerFromContext(ctx).With(
		"crew", o.name,
		"session_id", in.SessionID,
		"user_id", in.UserID,
	)
	log.Info("crew started", "agents_count", len(o.agents))

	var (
		out AgentOutput
		err error
	)

	for _, ag := range o.agents {
		start := time.Now()
		log.Debug("agent run start", "agent", ag.Name())

		out, err = ag.Run(ctx, in)
		if err != nil {
			log.Error("agent failed",
				"agent", ag.Name(),
				"error", err)
			return AgentOutput{}, fmt.Errorf("agent %s failed: %w", ag.Name(), err)
		}

		log.Info("agent run end",
			"agent", ag.Name(),
			"attempts", out.Attempts,
			"fallback", out.Fallback,
			"elapsed_ms", time.Since(start).Milliseconds())

		if out.Fallback {
			break
		}
		in.Previous = out.Reply
	}

	log.Info("crew end")
	return out, nil
}
