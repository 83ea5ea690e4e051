package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/legalease/internal/pkg/errcode"
	appErr "github.com/xxxsen/legalease/internal/pkg/errors"
)

// multipart framing around the file part
const uploadOverhead = 1 << 20

func formatUploadLimit(bytes int64) string {
	const mb = 1024 * 1024
	if bytes <= 0 {
		return "0MB"
	}
	value := bytes / mb
	if value <= 0 {
		value = 1
	}
	return strconv.FormatInt(value, 10) + "MB"
}

// UploadLimit stops reading the request body past maxBytes plus framing.
func UploadLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+uploadOverhead)
		}
		c.Next()
	}
}

type uploadError struct {
	code int
	msg  string
}

func (e *uploadError) Error() string {
	return e.msg
}

func (e *uploadError) Unwrap() error {
	return appErr.ErrInvalid
}

// parseUploadForm reads the multipart body once so a body cut off by
// UploadLimit is reported as too large and not as a missing field.
func parseUploadForm(c *gin.Context, maxBytes int64) error {
	if _, err := c.MultipartForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &uploadError{code: errcode.ErrFileTooLarge, msg: fmt.Sprintf("file exceeds %s", formatUploadLimit(maxBytes))}
		}
		return &uploadError{code: errcode.ErrInvalidFile, msg: "a PDF file is required"}
	}
	return nil
}

// openUpload returns the "file" part of a multipart form after checking it
// is a PDF within the size limit.
func openUpload(c *gin.Context, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, &uploadError{code: errcode.ErrFileTooLarge, msg: fmt.Sprintf("file exceeds %s", formatUploadLimit(maxBytes))}
		}
		return nil, nil, &uploadError{code: errcode.ErrInvalidFile, msg: "a PDF file is required"}
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return nil, nil, &uploadError{code: errcode.ErrInvalidFile, msg: "only PDF files are accepted"}
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, nil, &uploadError{code: errcode.ErrFileTooLarge, msg: fmt.Sprintf("file exceeds %s", formatUploadLimit(maxBytes))}
	}
	if header.Size <= 0 {
		return nil, nil, &uploadError{code: errcode.ErrInvalidFile, msg: "uploaded file is empty"}
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, &uploadError{code: errcode.ErrInvalidFile, msg: "failed to open file"}
	}
	return file, header, nil
}
