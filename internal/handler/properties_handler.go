package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/legalease/internal/pkg/response"
	"github.com/xxxsen/legalease/internal/summary"
)

type Properties struct {
	Languages      []summary.Language `json:"languages"`
	MaxUploadBytes int64              `json:"max_upload_bytes"`
	MaxUpload      string             `json:"max_upload"`
	MaxInputChars  int                `json:"max_input_chars"`
}

type PropertiesHandler struct {
	properties Properties
}

func NewPropertiesHandler(maxUploadBytes int64, maxInputChars int) *PropertiesHandler {
	return &PropertiesHandler{properties: Properties{
		Languages:      summary.SupportedLanguages(),
		MaxUploadBytes: maxUploadBytes,
		MaxUpload:      formatUploadLimit(maxUploadBytes),
		MaxInputChars:  maxInputChars,
	}}
}

func (h *PropertiesHandler) Get(c *gin.Context) {
	response.Success(c, gin.H{"properties": h.properties})
}
