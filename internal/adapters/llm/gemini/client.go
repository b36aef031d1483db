package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/platform/httpclient"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
)

var ErrGeminiUnauthorized = errors.New("gemini unauthorized")

type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	APIKeyHeader string
	Timeout      time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client implementa analysis.Provider contra generateContent.
type Client struct {
	model  string
	apiKey string
	http   *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "x-goog-api-key"
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	hc, err := httpclient.New(httpclient.Config{
		BaseURL:   base,
		Timeout:   cfg.Timeout,
		Headers:   map[string]string{h: apiKey},
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		model:  model,
		apiKey: apiKey,
		http:   hc,
	}, nil
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

func (c *Client) Generate(ctx context.Context, req analysis.Request) (string, error) {
	if !c.Configured() {
		return "", analysis.ErrProviderNotConfigured
	}

	body := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: req.UserPrompt}},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   analysis.ResponseSchema(),
		},
	}
	if strings.TrimSpace(req.SystemPrompt) != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(c.model))

	var out generateResponse
	if err := c.http.PostJSON(ctx, path, body, &out); err != nil {
		return "", upstreamError(err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidates", analysis.ErrProviderUpstream)
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// upstreamError envuelve toda falla en analysis.ErrProviderUpstream; 401/403
// además llevan ErrGeminiUnauthorized para distinguir una key inválida.
func upstreamError(err error) error {
	var se *httpclient.StatusError
	if errors.As(err, &se) && se.Unauthorized() {
		return fmt.Errorf("%w: %w: %v", analysis.ErrProviderUpstream, ErrGeminiUnauthorized, err)
	}
	return fmt.Errorf("%w: %v", analysis.ErrProviderUpstream, err)
}
