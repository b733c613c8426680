package httpclient

import (
	"context"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/llm"
	"go.uber.org/zap"
)

// LLMClient calls the LLM gateway process.
type LLMClient struct {
	internalClient
}

func NewLLMClient(cfg *config.Config, log *zap.Logger) *LLMClient {
	return &LLMClient{
		internalClient: newInternalClient(cfg.LLM.BaseURL, cfg.LLM.InternalKey, cfg.LLM.Timeout, log),
	}
}

// GenerateIdea calls POST /ai/idea/generate
func (c *LLMClient) GenerateIdea(ctx context.Context, attrs llm.IdeaAttributes) (string, error) {
	var out llm.GenerateIdeaResponse
	if err := c.postJSON(ctx, "generate_idea", "/ai/idea/generate", attrs, &out); err != nil {
		return "", err
	}
	return out.Idea, nil
}

// AssessFeasibility calls POST /ai/idea/feasibility
func (c *LLMClient) AssessFeasibility(ctx context.Context, idea string) (*llm.Feasibility, error) {
	var out llm.Feasibility
	if err := c.postJSON(ctx, "feasibility", "/ai/idea/feasibility", llm.FeasibilityRequest{Idea: idea}, &out); err != nil {
		return nil, err
	}
	if out.Risks == nil {
		out.Risks = []string{}
	}
	return &out, nil
}
