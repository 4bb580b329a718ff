package normalize

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestStaticNormalizerMatchesIgnoringCaseAndSpacing(t *testing.T) {
	n := NewStaticNormalizer()
	res, err := n.Normalize(context.Background(), Request{
		OriginalName:    "  acme   CORP ",
		ExistingClients: []string{"Globex", "Acme Corp"},
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if !res.IsMatch {
		t.Fatal("expected a match")
	}
	if res.SuggestedName != "Acme Corp" {
		t.Fatalf("SuggestedName = %q, want %q", res.SuggestedName, "Acme Corp")
	}
	if res.Confidence == 0 {
		t.Fatal("expected non-zero confidence for a match")
	}
}

func TestStaticNormalizerTitleCasesUnmatchedNames(t *testing.T) {
	n := NewStaticNormalizer()
	res, err := n.Normalize(context.Background(), Request{
		OriginalName:    "initech gmbh",
		ExistingClients: []string{"Acme Corp"},
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if res.IsMatch {
		t.Fatal("expected no match")
	}
	if res.SuggestedName != "Initech Gmbh" {
		t.Fatalf("SuggestedName = %q", res.SuggestedName)
	}
}

func TestGeminiNormalizerFallsBackOnTransportError(t *testing.T) {
	n, err := NewGeminiNormalizer(GeminiOptions{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("boom")
		})},
		Fallback: NewStaticNormalizer(),
	})
	if err != nil {
		t.Fatalf("NewGeminiNormalizer returned error: %v", err)
	}
	res, err := n.Normalize(context.Background(), Request{
		OriginalName:    "acme corp",
		ExistingClients: []string{"Acme Corp"},
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if res.Provider != "static" {
		t.Fatalf("Provider = %q, want static fallback", res.Provider)
	}
	if !res.IsMatch {
		t.Fatal("fallback should still match")
	}
}

func TestGeminiNormalizerParsesVerdict(t *testing.T) {
	body := `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"is_match\":true,\"confidence\":85,\"suggested_name\":\"Acme Corp\",\"reasoning\":\"abbreviation\"}"}]}}]}`
	n, err := NewGeminiNormalizer(GeminiOptions{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
			}, nil
		})},
		Fallback: NewStaticNormalizer(),
	})
	if err != nil {
		t.Fatalf("NewGeminiNormalizer returned error: %v", err)
	}
	res, err := n.Normalize(context.Background(), Request{OriginalName: "ACME", ExistingClients: []string{"Acme Corp"}})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if res.Provider != geminiProviderName {
		t.Fatalf("Provider = %q, want %q", res.Provider, geminiProviderName)
	}
	if !res.IsMatch || res.Confidence != 85 || res.SuggestedName != "Acme Corp" {
		t.Fatalf("unexpected verdict: %+v", res)
	}
}

func TestOpenAINormalizerFallsBackOnHTTPError(t *testing.T) {
	n, err := NewOpenAINormalizer(OpenAIOptions{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(strings.NewReader(`{"error":"rate limited"}`)),
			}, nil
		})},
		Fallback: NewStaticNormalizer(),
	})
	if err != nil {
		t.Fatalf("NewOpenAINormalizer returned error: %v", err)
	}
	res, err := n.Normalize(context.Background(), Request{OriginalName: "globex", ExistingClients: []string{"Globex"}})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if res.Provider != "static" {
		t.Fatalf("Provider = %q, want static fallback", res.Provider)
	}
}

func TestParseVerdictStripsMarkdownFence(t *testing.T) {
	res, err := parseVerdict("```json\n{\"is_match\":false,\"confidence\":120,\"suggested_name\":\"X\",\"reasoning\":\"r\"}\n```")
	if err != nil {
		t.Fatalf("parseVerdict returned error: %v", err)
	}
	if res.Confidence != 100 {
		t.Fatalf("Confidence = %d, want clamp to 100", res.Confidence)
	}
}
