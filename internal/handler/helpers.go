package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/legalease/internal/ai"
	"github.com/xxxsen/legalease/internal/middleware"
	"github.com/xxxsen/legalease/internal/pkg/errcode"
	appErr "github.com/xxxsen/legalease/internal/pkg/errors"
	"github.com/xxxsen/legalease/internal/pkg/response"
)

const (
	msgEmptySummary = "The model returned an empty summary. Try a shorter file or switch to English."
	msgQuota        = "Not enough credits with the model provider. Please top up."
	msgTimeout      = "The model did not respond in time. Please try again."
	msgGeneric      = "An error occurred: "
	msgSuccess      = "The judgment has been simplified successfully."
)

// describeError turns a pipeline failure into the coded message shown to
// the user.
func describeError(err error) response.CodeError {
	var upErr *uploadError
	switch {
	case errors.As(err, &upErr):
		return response.NewError(upErr.code, upErr.msg)
	case errors.Is(err, appErr.ErrInvalid):
		return response.NewError(errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrEmptySummary):
		return response.NewError(errcode.ErrEmptySummary, msgEmptySummary)
	case errors.Is(err, appErr.ErrQuota):
		return response.NewError(errcode.ErrQuota, msgQuota)
	case errors.Is(err, appErr.ErrTimeout):
		return response.NewError(errcode.ErrTimeout, msgTimeout)
	case errors.Is(err, appErr.ErrExtraction):
		return response.NewError(errcode.ErrExtraction, msgGeneric+err.Error())
	case errors.Is(err, ai.ErrUnavailable):
		return response.NewError(errcode.ErrAIUnavailable, msgGeneric+err.Error())
	default:
		return response.NewError(errcode.ErrInternal, msgGeneric+err.Error())
	}
}

func logError(c *gin.Context, err error) {
	requestID, _ := c.Get(middleware.ContextRequestIDKey)
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
}
