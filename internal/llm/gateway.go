package llm

import (
	"context"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/telemetry"
	"go.uber.org/zap"
)

const (
	ideaTemperature        = 0.8
	feasibilityTemperature = 0.3
)

// Gateway turns idea and feasibility requests into model completions.
type Gateway struct {
	provider Provider
	budget   *Budget
	log      *zap.Logger
}

func NewGateway(provider Provider, budget *Budget, log *zap.Logger) *Gateway {
	return &Gateway{provider: provider, budget: budget, log: log}
}

func (g *Gateway) GenerateIdea(ctx context.Context, attrs IdeaAttributes) (string, error) {
	start := time.Now()
	text, err := g.provider.Complete(ctx, CompletionRequest{
		User:        IdeaPrompt(attrs),
		Temperature: ideaTemperature,
	})
	telemetry.RecordLLMRequest(ctx, "idea", time.Since(start), err)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *Gateway) AssessFeasibility(ctx context.Context, idea string) (*Feasibility, error) {
	if g.budget != nil {
		cut, truncated, err := g.budget.Truncate(idea)
		if err != nil {
			g.log.Warn("feasibility input not truncated", zap.Error(err))
		} else if truncated {
			g.log.Debug("feasibility input truncated to token budget")
			idea = cut
		}
	}

	start := time.Now()
	text, err := g.provider.Complete(ctx, CompletionRequest{
		System:      feasibilitySystemPrompt,
		User:        FeasibilityPrompt(idea),
		Temperature: feasibilityTemperature,
	})
	telemetry.RecordLLMRequest(ctx, "feasibility", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	out := ParseFeasibility(text)
	return &out, nil
}
