package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vet-clinic-ops/internal/domain/analysis"

	goopenai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // opcional: proxies / Azure-compatible
	Timeout time.Duration
}

// Client implementa analysis.Provider con chat completions en modo JSON.
type Client struct {
	client *goopenai.Client
	model  string
	apiKey string
}

func NewClient(cfg Config) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)

	oc := goopenai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		oc.BaseURL = strings.TrimRight(base, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: goopenai.NewClientWithConfig(oc),
		model:  model,
		apiKey: apiKey,
	}
}

func (c *Client) Name() string { return "openai" }

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

func (c *Client) Generate(ctx context.Context, req analysis.Request) (string, error) {
	if !c.Configured() {
		return "", analysis.ErrProviderNotConfigured
	}

	msgs := make([]goopenai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	msgs = append(msgs, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: req.UserPrompt})

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: 0.2,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrProviderUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", analysis.ErrProviderUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
