package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/legalease/internal/model"
	"github.com/xxxsen/legalease/internal/service"
	"github.com/xxxsen/legalease/internal/summary"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type PageHandler struct {
	summaries      *service.SummaryService
	maxUploadBytes int64
}

type pageData struct {
	Languages   []summary.Language
	Selected    summary.Language
	MaxUpload   string
	Summary     *model.Summary
	SummaryHTML template.HTML
	Success     string
	Error       string
}

func NewPageHandler(summaries *service.SummaryService, maxUploadBytes int64) *PageHandler {
	return &PageHandler{summaries: summaries, maxUploadBytes: maxUploadBytes}
}

func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, h.newPageData(summary.English))
}

func (h *PageHandler) Submit(c *gin.Context) {
	result, err := summarizeUpload(c, h.summaries, h.maxUploadBytes)
	selected, perr := summary.ParseLanguage(c.PostForm("language"))
	if perr != nil {
		selected = summary.English
	}
	data := h.newPageData(selected)
	if err != nil {
		logError(c, err)
		data.Error = describeError(err).Error()
		h.render(c, data)
		return
	}
	data.Summary = result
	if result.HTML != "" {
		// goldmark drops raw html, so its output is safe to embed
		data.SummaryHTML = template.HTML(result.HTML)
	} else {
		data.SummaryHTML = template.HTML("<p>" + template.HTMLEscapeString(result.Text) + "</p>")
	}
	data.Success = msgSuccess
	h.render(c, data)
}

func (h *PageHandler) newPageData(selected summary.Language) pageData {
	return pageData{
		Languages: summary.SupportedLanguages(),
		Selected:  selected,
		MaxUpload: formatUploadLimit(h.maxUploadBytes),
	}
}

func (h *PageHandler) render(c *gin.Context, data pageData) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		logError(c, err)
	}
}
