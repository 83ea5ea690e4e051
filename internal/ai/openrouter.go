package ai

import (
	"context"
	"net/http"
	"strings"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

type openrouterConfig struct {
	APIKey      string `json:"api_key"`
	BaseURL     string `json:"base_url"`
	HTTPReferer string `json:"http_referer"`
	XTitle      string `json:"x_title"`
}

type openrouterProvider struct {
	apiKey      string
	baseURL     string
	httpReferer string
	xTitle      string
	client      *http.Client
}

func (p *openrouterProvider) Name() string {
	return "openrouter"
}

func (p *openrouterProvider) Chat(ctx context.Context, model string, messages []Message, opts ChatOptions) (string, error) {
	if p.apiKey == "" {
		return "", ErrUnavailable
	}
	headers := map[string]string{
		"Authorization": "Bearer " + p.apiKey,
		"HTTP-Referer":  p.httpReferer,
		"X-Title":       p.xTitle,
	}
	return postChatCompletion(ctx, p.client, p.Name(), p.baseURL, headers, model, messages, opts)
}

func createOpenRouterFactory(args interface{}) (IProvider, error) {
	cfg := &openrouterConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	provider := &openrouterProvider{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		baseURL:     baseURL,
		httpReferer: strings.TrimSpace(cfg.HTTPReferer),
		xTitle:      strings.TrimSpace(cfg.XTitle),
		client:      http.DefaultClient,
	}
	return provider, nil
}

func init() {
	Register("openrouter", createOpenRouterFactory)
}
