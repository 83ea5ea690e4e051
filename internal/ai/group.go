package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type GeneratorEntry struct {
	Name      string
	Generator IGenerator
}

type groupGenerator struct {
	items []GeneratorEntry
}

// NewGroupGenerator tries each entry in order and returns the first success.
// Fallback only happens when several providers are configured; one logical
// attempt may then reach more than one provider.
func NewGroupGenerator(items []GeneratorEntry) IGenerator {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 {
		return items[0].Generator
	}
	return &groupGenerator{items: items}
}

func (g *groupGenerator) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	var lastErr, quotaErr error
	for i, item := range g.items {
		if item.Generator == nil {
			continue
		}
		res, err := item.Generator.Chat(ctx, messages, opts)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if quotaErr == nil && IsPaymentRequired(err) {
			quotaErr = err
		}
		logutil.GetLogger(ctx).Warn("generator failed", zap.Int("index", i), zap.String("name", item.Name), zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		return "", fmt.Errorf("generator not configured")
	}
	// an exhausted balance tells the user more than a later fallback failure
	if quotaErr != nil && !errors.Is(lastErr, context.DeadlineExceeded) {
		return "", quotaErr
	}
	return "", lastErr
}
