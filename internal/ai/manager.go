package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type ManagerConfig struct {
	Timeout time.Duration
}

// Manager bounds every completion call with the configured timeout.
type Manager struct {
	generator IGenerator
	cfg       ManagerConfig
}

func NewManager(generator IGenerator, cfg ManagerConfig) *Manager {
	return &Manager{
		generator: generator,
		cfg:       cfg,
	}
}

// Complete returns the trimmed model output. An empty answer is not an error
// here; callers decide what an empty completion means.
func (m *Manager) Complete(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	if m == nil || m.generator == nil {
		return "", fmt.Errorf("generator not configured: %w", ErrUnavailable)
	}
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}
	resp, err := m.generator.Chat(ctx, messages, opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

