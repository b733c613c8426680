package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Renishchandera/gameforge-ai/internal/llm"
	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxDerivedTitleRunes = 120

// IdeaAI is the LLM gateway as seen from the API process.
type IdeaAI interface {
	GenerateIdea(ctx context.Context, attrs llm.IdeaAttributes) (string, error)
	AssessFeasibility(ctx context.Context, idea string) (*llm.Feasibility, error)
}

type IdeaService interface {
	Generate(ctx context.Context, attrs llm.IdeaAttributes) (string, error)
	Feasibility(ctx context.Context, idea string) (*llm.Feasibility, error)
	Create(ctx context.Context, ownerID uuid.UUID, in CreateIdeaInput) (*model.Idea, error)
	ListSaved(ctx context.Context, ownerID uuid.UUID) ([]model.Idea, error)
}

type ideaService struct {
	r   repo.IdeaRepo
	ai  IdeaAI
	log *zap.Logger
}

func NewIdeaService(r repo.IdeaRepo, ai IdeaAI, log *zap.Logger) IdeaService {
	return &ideaService{r: r, ai: ai, log: log}
}

type CreateIdeaInput struct {
	Title   string
	Content string
	llm.IdeaAttributes
	FeasibilityScore *int
	Risks            []string
}

func (s *ideaService) Generate(ctx context.Context, attrs llm.IdeaAttributes) (string, error) {
	text, err := s.ai.GenerateIdea(ctx, attrs)
	if err != nil {
		s.log.Error("generate idea failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return text, nil
}

func (s *ideaService) Feasibility(ctx context.Context, idea string) (*llm.Feasibility, error) {
	if strings.TrimSpace(idea) == "" {
		return nil, ErrIdeaContentRequired
	}
	out, err := s.ai.AssessFeasibility(ctx, idea)
	if err != nil {
		s.log.Error("feasibility check failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return out, nil
}

func (s *ideaService) Create(ctx context.Context, ownerID uuid.UUID, in CreateIdeaInput) (*model.Idea, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrIdeaContentRequired
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DeriveTitle(in.Content)
	}
	risks := in.Risks
	if risks == nil {
		risks = []string{}
	}
	score := in.FeasibilityScore
	if score != nil {
		v := min(max(*score, 0), 100)
		score = &v
	}

	idea := &model.Idea{
		Title:            title,
		Content:          in.Content,
		Genres:           in.GenreList(),
		Platforms:        in.PlatformList(),
		TargetAudience:   in.TargetAudience,
		CoreMechanic:     in.CoreMechanic,
		ArtStyle:         in.ArtStyle,
		Monetization:     in.Monetization,
		FeasibilityScore: score,
		Risks:            risks,
		CreatedBy:        ownerID,
	}
	if err := s.r.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return idea, nil
}

func (s *ideaService) ListSaved(ctx context.Context, ownerID uuid.UUID) ([]model.Idea, error) {
	ideas, err := s.r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return ideas, nil
}

// DeriveTitle takes the "TITLE:" line of generated text, else its first non-empty line.
func DeriveTitle(content string) string {
	var first string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) >= 6 && strings.EqualFold(line[:6], "TITLE:") {
			if t := strings.TrimSpace(line[6:]); t != "" {
				return truncateRunes(strings.Trim(t, "*\"' "), maxDerivedTitleRunes)
			}
		}
		if first == "" {
			first = line
		}
	}
	return truncateRunes(first, maxDerivedTitleRunes)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
