package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Page       *PageHandler
	Summaries  *SummaryHandler
	Properties *PropertiesHandler
	// MaxUploadBytes caps request bodies on upload routes; 0 disables the cap.
	MaxUploadBytes int64
}

func RegisterRoutes(root *gin.RouterGroup, deps RouterDeps) {
	upload := UploadLimit(deps.MaxUploadBytes)

	root.GET("/", deps.Page.Index)
	root.POST("/", upload, deps.Page.Submit)

	api := root.Group("/api/v1")
	api.GET("/properties", deps.Properties.Get)
	api.POST("/summaries", upload, deps.Summaries.Create)
}
