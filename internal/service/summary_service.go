package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/legalease/internal/ai"
	"github.com/xxxsen/legalease/internal/model"
	appErr "github.com/xxxsen/legalease/internal/pkg/errors"
	"github.com/xxxsen/legalease/internal/summary"
)

type State string

const (
	StateIdle         State = "idle"
	StateExtracting   State = "extracting"
	StateCompressing  State = "compressing"
	StateFirstAttempt State = "first_attempt"
	StateLeakageCheck State = "leakage_check"
	StateRetryAttempt State = "retry_attempt"
	StateDone         State = "done"
	StateError        State = "error"
)

type TextExtractor interface {
	Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

type SummaryConfig struct {
	MaxInputChars int
	CacheSize     int
	CacheTTL      time.Duration
}

type SummaryService struct {
	extractor TextExtractor
	manager   *ai.Manager
	checker   summary.LanguageLeakageChecker
	cfg       SummaryConfig
	cache     *expirable.LRU[string, model.Summary]
}

func NewSummaryService(extractor TextExtractor, manager *ai.Manager, checker summary.LanguageLeakageChecker, cfg SummaryConfig) *SummaryService {
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = summary.DefaultMaxInputChars
	}
	if checker == nil {
		checker = summary.NewEnglishWordChecker(summary.DefaultLeakageThreshold)
	}
	svc := &SummaryService{
		extractor: extractor,
		manager:   manager,
		checker:   checker,
		cfg:       cfg,
	}
	if cfg.CacheSize > 0 {
		svc.cache = expirable.NewLRU[string, model.Summary](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return svc
}

// run tracks one pass through the pipeline. It is never reused.
type run struct {
	logger *zap.Logger
	state  State
	start  time.Time
}

func (s *SummaryService) newRun(ctx context.Context, lang summary.Language) *run {
	return &run{
		logger: logutil.GetLogger(ctx).With(zap.String("language", lang.String())),
		state:  StateIdle,
		start:  time.Now(),
	}
}

func (r *run) enter(state State) {
	r.logger.Debug("summary state", zap.String("from", string(r.state)), zap.String("to", string(state)))
	r.state = state
}

func (r *run) fail(err error) error {
	r.logger.Error("summary failed",
		zap.String("state", string(r.state)),
		zap.Duration("elapsed", time.Since(r.start)),
		zap.Error(err),
	)
	r.state = StateError
	return err
}

// Summarize extracts the PDF text and runs it through the summary pipeline.
func (s *SummaryService) Summarize(ctx context.Context, doc io.ReaderAt, size int64, lang summary.Language) (*model.Summary, error) {
	lang, err := summary.ParseLanguage(lang.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrInvalid, err)
	}
	r := s.newRun(ctx, lang)
	r.enter(StateExtracting)
	text, err := s.extractor.Extract(ctx, doc, size)
	if err != nil {
		return nil, r.fail(err)
	}
	return s.summarize(ctx, r, text, lang)
}

// SummarizeText runs the pipeline on text that was already extracted.
func (s *SummaryService) SummarizeText(ctx context.Context, text string, lang summary.Language) (*model.Summary, error) {
	lang, err := summary.ParseLanguage(lang.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrInvalid, err)
	}
	return s.summarize(ctx, s.newRun(ctx, lang), text, lang)
}

func (s *SummaryService) summarize(ctx context.Context, r *run, text string, lang summary.Language) (*model.Summary, error) {
	r.enter(StateCompressing)
	safeText := summary.Compress(text, s.cfg.MaxInputChars)
	result := model.Summary{
		Language:        lang.String(),
		InputChars:      len([]rune(text)),
		CompressedChars: len([]rune(safeText)),
		Truncated:       summary.IsTruncated(text, s.cfg.MaxInputChars),
	}

	key := cacheKey(lang, safeText)
	if cached, ok := s.cacheGet(key); ok {
		r.enter(StateDone)
		r.logger.Info("summary served from cache", zap.Int("input_chars", result.InputChars))
		cached.Cached = true
		return &cached, nil
	}

	r.enter(StateFirstAttempt)
	first, err := s.manager.Complete(ctx, summary.InitialMessages(safeText, lang), summary.FirstAttemptOptions)
	result.Attempts++
	if err != nil {
		return nil, r.fail(classifyRemoteError(err))
	}
	final := first

	if !lang.IsEnglish() {
		r.enter(StateLeakageCheck)
		if s.checker.Leaks(first) {
			result.LeakageDetected = true
			result.Retried = true
			r.enter(StateRetryAttempt)
			retry, err := s.manager.Complete(ctx, summary.RetryMessages(safeText, lang), summary.RetryAttemptOptions)
			result.Attempts++
			if err != nil {
				return nil, r.fail(classifyRemoteError(err))
			}
			// a retry that is empty or still leaking leaves the first answer in place
			if retry != "" && !s.checker.Leaks(retry) {
				final = retry
				result.RetryAccepted = true
			}
		}
	}

	if final == "" {
		return nil, r.fail(appErr.ErrEmptySummary)
	}
	result.Text = final
	r.enter(StateDone)
	r.logger.Info("summary generated",
		zap.Int("input_chars", result.InputChars),
		zap.Int("compressed_chars", result.CompressedChars),
		zap.Int("attempts", result.Attempts),
		zap.Bool("retried", result.Retried),
		zap.Bool("retry_accepted", result.RetryAccepted),
		zap.Duration("elapsed", time.Since(r.start)),
	)
	s.cacheAdd(key, result)
	return &result, nil
}

// classifyRemoteError maps completion failures onto the error taxonomy.
func classifyRemoteError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", appErr.ErrTimeout, err)
	case ai.IsPaymentRequired(err):
		return fmt.Errorf("%w: %v", appErr.ErrQuota, err)
	default:
		return err
	}
}

func cacheKey(lang summary.Language, text string) string {
	hash := sha256.Sum256([]byte(lang.String() + "\x00" + text))
	return hex.EncodeToString(hash[:])
}

func (s *SummaryService) cacheGet(key string) (model.Summary, bool) {
	if s.cache == nil {
		return model.Summary{}, false
	}
	return s.cache.Get(key)
}

func (s *SummaryService) cacheAdd(key string, value model.Summary) {
	if s.cache == nil {
		return
	}
	s.cache.Add(key, value)
}

func (s *SummaryService) MaxInputChars() int {
	return s.cfg.MaxInputChars
}
