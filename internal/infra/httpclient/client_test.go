package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func llmConfig(url string) *config.Config {
	return &config.Config{LLM: config.LLMCfg{BaseURL: url, InternalKey: "k1", Timeout: time.Second}}
}

func TestLLMClient_GenerateIdea(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ai/idea/generate", r.URL.Path)
		assert.Equal(t, "k1", r.Header.Get(InternalKeyHeader))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"RPG"}, body["genres"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"idea":"TITLE: Ember"}`))
	}))
	defer srv.Close()

	c := NewLLMClient(llmConfig(srv.URL), zap.NewNop())
	out, err := c.GenerateIdea(context.Background(), llm.IdeaAttributes{Genres: []string{"RPG"}})
	require.NoError(t, err)
	assert.Equal(t, "TITLE: Ember", out)
}

func TestLLMClient_AssessFeasibility(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai/idea/feasibility", r.URL.Path)
		var body llm.FeasibilityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "my idea", body.Idea)
		_, _ = w.Write([]byte(`{"score":70,"reasoning":"fine"}`))
	}))
	defer srv.Close()

	c := NewLLMClient(llmConfig(srv.URL), zap.NewNop())
	out, err := c.AssessFeasibility(context.Background(), "my idea")
	require.NoError(t, err)
	assert.Equal(t, &llm.Feasibility{Score: 70, Reasoning: "fine", Risks: []string{}}, out)
}

func TestLLMClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"AI service error","error":"boom"}`))
	}))
	defer srv.Close()

	c := NewLLMClient(llmConfig(srv.URL), zap.NewNop())
	_, err := c.GenerateIdea(context.Background(), llm.IdeaAttributes{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, se.Body, "boom")
}

func TestLLMClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"idea":"late"}`))
	}))
	defer srv.Close()

	cfg := llmConfig(srv.URL)
	cfg.LLM.Timeout = 50 * time.Millisecond
	c := NewLLMClient(cfg, zap.NewNop())
	_, err := c.GenerateIdea(context.Background(), llm.IdeaAttributes{})
	assert.ErrorContains(t, err, "do request")
}

func TestPredictorClient_PredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict-success", r.URL.Path)
		assert.Equal(t, "pk", r.Header.Get(InternalKeyHeader))

		var in PredictionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, PredictionInput{Genre: "RPG", Platform: "PC", ReleaseYear: 2027, IsMultiplayer: true, TeamSize: 3}, in)

		_, _ = w.Write([]byte(`{"success_probability":71.5,"confidence":"high","verdict":"Likely Success","model_version":"rf-v2"}`))
	}))
	defer srv.Close()

	cfg := &config.Config{Predictor: config.PredictorCfg{BaseURL: srv.URL, InternalKey: "pk"}}
	c := NewPredictorClient(cfg, zap.NewNop())
	out, err := c.PredictSuccess(context.Background(), PredictionInput{
		Genre: "RPG", Platform: "PC", ReleaseYear: 2027, IsMultiplayer: true, TeamSize: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, &PredictionOutput{SuccessProbability: 71.5, Confidence: "high", Verdict: "Likely Success", ModelVersion: "rf-v2"}, out)
}
