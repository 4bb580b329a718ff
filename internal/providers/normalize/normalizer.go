// Package normalize suggests canonical client names for new lesson records so
// one client does not fan out into near-duplicate spellings.
package normalize

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Request carries the candidate name and the caller's known clients.
type Request struct {
	OriginalName    string   `json:"original_name"`
	ExistingClients []string `json:"existing_clients"`
}

// Response is the normalization verdict. Confidence is 0..100.
type Response struct {
	IsMatch       bool   `json:"is_match"`
	Confidence    int    `json:"confidence"`
	SuggestedName string `json:"suggested_name"`
	Reasoning     string `json:"reasoning"`
	Provider      string `json:"-"`
}

// Normalizer resolves a raw client name against the existing client list.
type Normalizer interface {
	Normalize(ctx context.Context, req Request) (*Response, error)
}

// StaticNormalizer is the deterministic fallback used when no AI provider is
// configured or the provider call fails. It matches case- and
// whitespace-insensitively and title-cases unmatched names.
type StaticNormalizer struct{}

func NewStaticNormalizer() *StaticNormalizer {
	return &StaticNormalizer{}
}

func (s *StaticNormalizer) Normalize(ctx context.Context, req Request) (*Response, error) {
	name := strings.TrimSpace(req.OriginalName)
	folded := foldName(name)
	for _, existing := range req.ExistingClients {
		if foldName(existing) == folded && folded != "" {
			return &Response{
				IsMatch:       true,
				Confidence:    90,
				SuggestedName: existing,
				Reasoning:     "exact match ignoring case and spacing",
				Provider:      "static",
			}, nil
		}
	}
	c := cases.Title(language.Und)
	return &Response{
		IsMatch:       false,
		Confidence:    0,
		SuggestedName: c.String(strings.ToLower(name)),
		Reasoning:     "no close match among existing clients",
		Provider:      "static",
	}, nil
}

func foldName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
