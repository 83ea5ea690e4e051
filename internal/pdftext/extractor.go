// Package pdftext pulls the plain text out of uploaded judgment PDFs.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/xxxsen/legalease/internal/pkg/errors"
)

type Config struct {
	// MaxPages rejects documents with more pages; 0 means no limit.
	MaxPages int
}

type Extractor struct {
	cfg Config
}

func New(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract concatenates the text of every page, each followed by a newline.
// Pages without extractable text add nothing.
func (e *Extractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	logger := logutil.GetLogger(ctx).With(zap.Int64("size", size))
	if r == nil || size <= 0 {
		return "", fmt.Errorf("%w: empty document", appErr.ErrExtraction)
	}
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: malformed pdf: %v", appErr.ErrExtraction, rec)
		}
	}()
	if pages, perr := e.PageCount(r, size); perr != nil {
		logger.Warn("pdf preflight failed", zap.Error(perr))
	} else {
		logger.Debug("pdf preflight", zap.Int("pages", pages))
		if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
			return "", fmt.Errorf("%w: document has %d pages, limit is %d", appErr.ErrExtraction, pages, e.cfg.MaxPages)
		}
	}

	raw, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return "", fmt.Errorf("%w: read document: %v", appErr.ErrExtraction, err)
	}
	raw, err = e.decrypt(logger, raw)
	if err != nil {
		return "", err
	}
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErr.ErrExtraction, err)
	}
	var sb strings.Builder
	total := reader.NumPage()
	empty := 0
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			empty++
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", appErr.ErrExtraction, i, err)
		}
		if content == "" {
			empty++
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	logger.Info("pdf text extracted",
		zap.Int("pages", total),
		zap.Int("empty_pages", empty),
		zap.Int("chars", sb.Len()),
	)
	return sb.String(), nil
}

// decrypt strips the encryption of documents that open with an empty user
// password, which is how owner protected judgments are usually published.
// Unencrypted documents are returned unchanged.
func (e *Extractor) decrypt(logger *zap.Logger, raw []byte) ([]byte, error) {
	ctx, err := api.ReadContext(bytes.NewReader(raw), relaxedConfig())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "password") {
			return nil, fmt.Errorf("%w: encrypted pdf needs a password: %v", appErr.ErrExtraction, err)
		}
		// leave the verdict to the text parser
		return raw, nil
	}
	if ctx.Encrypt == nil {
		return raw, nil
	}
	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(raw), &out, relaxedConfig()); err != nil {
		// the document opened with an empty password, so the text parser may
		// still manage it
		logger.Warn("pdf decrypt failed", zap.Error(err))
		return raw, nil
	}
	logger.Debug("pdf decrypted", zap.Int("size", out.Len()))
	return out.Bytes(), nil
}

func relaxedConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = ""
	conf.OwnerPW = ""
	return conf
}

// PageCount validates the document structure with pdfcpu and returns its
// page count.
func (e *Extractor) PageCount(r io.ReaderAt, size int64) (int, error) {
	return api.PageCount(io.NewSectionReader(r, 0, size), relaxedConfig())
}
