package llm

import "github.com/Renishchandera/gameforge-ai/internal/modules/model"

// IdeaAttributes are the optional knobs for idea generation.
// Genre and Platform accept a string or an array; the plural fields win when both are set.
type IdeaAttributes struct {
	Genre          model.StringList `json:"genre,omitempty"`
	Genres         model.StringList `json:"genres,omitempty"`
	Platform       model.StringList `json:"platform,omitempty"`
	Platforms      model.StringList `json:"platforms,omitempty"`
	TargetAudience string           `json:"targetAudience,omitempty"`
	CoreMechanic   string           `json:"coreMechanic,omitempty"`
	ArtStyle       string           `json:"artStyle,omitempty"`
	Monetization   string           `json:"monetization,omitempty"`
}

func (a IdeaAttributes) GenreList() []string {
	return model.FirstNonEmpty(a.Genres, a.Genre)
}

func (a IdeaAttributes) PlatformList() []string {
	return model.FirstNonEmpty(a.Platforms, a.Platform)
}

type GenerateIdeaResponse struct {
	Idea string `json:"idea"`
}

type FeasibilityRequest struct {
	Idea string `json:"idea"`
}

type Feasibility struct {
	Score     int      `json:"score"`
	Reasoning string   `json:"reasoning"`
	Risks     []string `json:"risks"`
}

// ErrorResponse is the gateway's failure body.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
