package normalize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Normalizer
}

// GeminiNormalizer calls the Gemini generateContent endpoint with a JSON
// response contract. Any failure falls through to the configured fallback.
type GeminiNormalizer struct {
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
	fallback Normalizer
}

const (
	geminiDefaultTimeout = 15 * time.Second
	geminiProviderName   = "gemini"
)

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	CandidateCount   int     `json:"candidateCount,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiNormalizer(opts GeminiOptions) (*GeminiNormalizer, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiNormalizer{
		apiKey:   opts.APIKey,
		model:    model,
		baseURL:  baseURL,
		client:   client,
		fallback: opts.Fallback,
	}, nil
}

func (g *GeminiNormalizer) Normalize(ctx context.Context, req Request) (*Response, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{{
				Text: buildNormalizePrompt(req),
			}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.2,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return g.useFallback(ctx, req)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), &buf)
	if err != nil {
		return g.useFallback(ctx, req)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return g.useFallback(ctx, req)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return g.useFallback(ctx, req)
	}
	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return g.useFallback(ctx, req)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return g.useFallback(ctx, req)
	}
	result, err := parseVerdict(decoded.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return g.useFallback(ctx, req)
	}
	result.Provider = geminiProviderName
	return result, nil
}

func (g *GeminiNormalizer) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
}

func (g *GeminiNormalizer) useFallback(ctx context.Context, req Request) (*Response, error) {
	if g.fallback == nil {
		return nil, errors.New("gemini normalize failed and no fallback configured")
	}
	return g.fallback.Normalize(ctx, req)
}

func buildNormalizePrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You deduplicate client names for a project-lessons tracker.\n")
	b.WriteString("Candidate name: ")
	b.WriteString(req.OriginalName)
	b.WriteString("\nExisting clients:\n")
	for _, c := range req.ExistingClients {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString(`Reply with JSON only: {"is_match": bool, "confidence": 0-100, "suggested_name": string, "reasoning": string}.`)
	b.WriteString(" If the candidate matches an existing client, suggested_name must be the existing spelling.")
	return b.String()
}

func parseVerdict(text string) (*Response, error) {
	trimmed := strings.TrimSpace(text)
	// Some models wrap JSON in a markdown fence despite the mime type hint.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	var out Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &out); err != nil {
		return nil, err
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 100 {
		out.Confidence = 100
	}
	return &out, nil
}
