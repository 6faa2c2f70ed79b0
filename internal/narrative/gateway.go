package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizsense/internal/llm"
)

// Purpose labels narrative requests in the event log.
const Purpose = "narrative-feedback"

// Gateway asks a model provider for narrative feedback. Every call is
// bounded by Config.Timeout and by the caller's context.
type Gateway struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewGateway creates a Gateway. Zero config fields take their defaults.
func NewGateway(provider llm.Provider, cfg Config, logger *zap.Logger) *Gateway {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{provider: provider, cfg: cfg, logger: logger}
}

// Timeout returns the per-call time limit.
func (g *Gateway) Timeout() time.Duration {
	return g.cfg.Timeout
}

// Generate returns narrative feedback for req. Any failure, including the
// deadline passing, is returned as an error for the caller to fall back on.
func (g *Gateway) Generate(ctx context.Context, req Request) (*Narrative, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, Purpose)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req)}},
		Schema:      NarrativeSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("narrative generation: %w", err)
	}

	var out Narrative
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse narrative response: %w", err)
	}
	if out.Summary == "" {
		return nil, fmt.Errorf("parse narrative response: empty summary")
	}

	g.logger.Debug("narrative generated",
		zap.String("model", resp.Model),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
	)
	return &out, nil
}
