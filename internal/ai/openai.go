package ai

import (
	"context"
	"net/http"
	"strings"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type openAIConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

type openAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Chat(ctx context.Context, model string, messages []Message, opts ChatOptions) (string, error) {
	if p.apiKey == "" {
		return "", ErrUnavailable
	}
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	return postChatCompletion(ctx, p.client, p.Name(), p.baseURL, headers, model, messages, opts)
}

func createOpenAIFactory(args interface{}) (IProvider, error) {
	cfg := &openAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	provider := &openAIProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
	return provider, nil
}

func init() {
	Register("openai", createOpenAIFactory)
}
