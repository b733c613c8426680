package httpclient

import (
	"context"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"go.uber.org/zap"
)

type PredictionInput struct {
	Genre         string  `json:"genre"`
	Platform      string  `json:"platform"`
	Price         float64 `json:"price"`
	ReleaseYear   int     `json:"release_year"`
	IsMultiplayer bool    `json:"is_multiplayer"`
	TeamSize      int     `json:"team_size"`
}

type PredictionOutput struct {
	SuccessProbability float64 `json:"success_probability"`
	Confidence         string  `json:"confidence"`
	Verdict            string  `json:"verdict"`
	ModelVersion       string  `json:"model_version"`
}

// PredictorClient calls the ML success-prediction service.
type PredictorClient struct {
	internalClient
}

func NewPredictorClient(cfg *config.Config, log *zap.Logger) *PredictorClient {
	return &PredictorClient{
		internalClient: newInternalClient(cfg.Predictor.BaseURL, cfg.Predictor.InternalKey, cfg.Predictor.Timeout, log),
	}
}

func (c *PredictorClient) PredictSuccess(ctx context.Context, in PredictionInput) (*PredictionOutput, error) {
	var out PredictionOutput
	if err := c.postJSON(ctx, "predict_success", "/predict-success", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
