package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/legalease/internal/model"
	"github.com/xxxsen/legalease/internal/pkg/errcode"
	appErr "github.com/xxxsen/legalease/internal/pkg/errors"
	"github.com/xxxsen/legalease/internal/pkg/markdown"
	"github.com/xxxsen/legalease/internal/pkg/response"
	"github.com/xxxsen/legalease/internal/service"
	"github.com/xxxsen/legalease/internal/summary"
)

type SummaryHandler struct {
	summaries      *service.SummaryService
	maxUploadBytes int64
}

func NewSummaryHandler(summaries *service.SummaryService, maxUploadBytes int64) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, maxUploadBytes: maxUploadBytes}
}

func (h *SummaryHandler) Create(c *gin.Context) {
	result, err := summarizeUpload(c, h.summaries, h.maxUploadBytes)
	if err != nil {
		logError(c, err)
		response.Fail(c, describeError(err))
		return
	}
	response.Success(c, gin.H{"result": result, "message": msgSuccess})
}

// summarizeUpload validates the multipart request and runs the pipeline on
// the uploaded PDF. The rendered HTML is attached to the result.
func summarizeUpload(c *gin.Context, svc *service.SummaryService, maxUploadBytes int64) (*model.Summary, error) {
	if err := parseUploadForm(c, maxUploadBytes); err != nil {
		return nil, err
	}
	var form summaryForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, &uploadError{
			code: errcode.ErrInvalidLanguage,
			msg:  fmt.Sprintf("language must be one of %v", summary.SupportedLanguages()),
		}
	}
	lang, err := summary.ParseLanguage(form.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrInvalid, err)
	}
	file, header, err := openUpload(c, maxUploadBytes)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ctx := c.Request.Context()
	logutil.GetLogger(ctx).Info("summary requested",
		zap.String("file", header.Filename),
		zap.Int64("size", header.Size),
		zap.String("language", lang.String()),
	)
	result, err := svc.Summarize(ctx, file, header.Size, lang)
	if err != nil {
		return nil, err
	}
	html, err := markdown.Render(result.Text)
	if err != nil {
		logutil.GetLogger(ctx).Warn("render summary failed", zap.Error(err))
	} else {
		result.HTML = html
	}
	return result, nil
}
