package normalize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Normalizer
}

// OpenAINormalizer calls the chat completions endpoint with a JSON response
// format. Any failure falls through to the configured fallback.
type OpenAINormalizer struct {
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
	fallback Normalizer
}

const (
	openAIDefaultTimeout = 15 * time.Second
	openAIProviderName   = "openai"
)

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAINormalizer(opts OpenAIOptions) (*OpenAINormalizer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAINormalizer{
		apiKey:   strings.TrimSpace(opts.APIKey),
		model:    model,
		baseURL:  baseURL,
		client:   client,
		fallback: opts.Fallback,
	}, nil
}

func (o *OpenAINormalizer) Normalize(ctx context.Context, req Request) (*Response, error) {
	payload := openAIChatRequest{
		Model: o.model,
		Messages: []openAIMessage{
			{Role: "system", Content: "You deduplicate client names. Reply with JSON only."},
			{Role: "user", Content: buildNormalizePrompt(req)},
		},
		Temperature:    0.2,
		ResponseFormat: &openAIFormat{Type: "json_object"},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return o.useFallback(ctx, req)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", &buf)
	if err != nil {
		return o.useFallback(ctx, req)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return o.useFallback(ctx, req)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return o.useFallback(ctx, req)
	}
	var decoded openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return o.useFallback(ctx, req)
	}
	if len(decoded.Choices) == 0 {
		return o.useFallback(ctx, req)
	}
	result, err := parseVerdict(decoded.Choices[0].Message.Content)
	if err != nil {
		return o.useFallback(ctx, req)
	}
	result.Provider = openAIProviderName
	return result, nil
}

func (o *OpenAINormalizer) useFallback(ctx context.Context, req Request) (*Response, error) {
	if o.fallback == nil {
		return nil, errors.New("openai normalize failed and no fallback configured")
	}
	return o.fallback.Normalize(ctx, req)
}
