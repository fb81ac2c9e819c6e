package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"docktor/internal/logging"
)

// Client is the LLM surface the analyzer needs. *GeminiClient satisfies
// it; tests substitute a canned implementation.
type Client interface {
	CompleteWithSchema(ctx context.Context, systemPrompt, userPrompt string, schema map[string]interface{}) (string, error)
}

// Analyzer asks an LLM for a structured verdict on a Dockerfile.
type Analyzer struct {
	client Client
}

// New creates an Analyzer backed by the given client.
func New(client Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze submits the Dockerfile text and decodes the structured verdict.
func (a *Analyzer) Analyze(ctx context.Context, dockerfile string) (*Result, error) {
	if strings.TrimSpace(dockerfile) == "" {
		return nil, fmt.Errorf("empty dockerfile")
	}

	start := time.Now()
	logging.API("analysis requested: dockerfile_len=%d", len(dockerfile))

	raw, err := a.client.CompleteWithSchema(ctx, analysisSystemPrompt, dockerfile, analysisSchema())
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(stripFences(raw)), &env); err != nil {
		logging.APIError("analysis response not decodable: %v", err)
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	res := env.toResult()
	logging.API("analysis completed in %v: issues=%d security=%d optimization=%d",
		time.Since(start), len(res.Issues), res.SecurityScore, res.OptimizationScore)
	return res, nil
}

// stripFences removes a surrounding markdown code fence. Models sometimes
// wrap JSON output in ```json blocks even when asked for raw JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
