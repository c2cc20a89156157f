package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/documind/documind/internal/middleware"
	"github.com/documind/documind/internal/service"
)

type RouterDeps struct {
	Auth       *service.AuthService
	Documents  *service.DocumentService
	Analyses   *service.AnalysisService
	Reports    *service.ReportService
	Similarity *service.SimilarityService
	Chats      *service.ChatService

	JWTSecret []byte
	// RateLimitWindow throttles the model-backed endpoints only; plain
	// CRUD stays unthrottled.
	RateLimitWindow time.Duration
}

func RegisterRoutes(gr *gin.RouterGroup, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.Auth)
	documentHandler := NewDocumentHandler(deps.Documents)
	analysisHandler := NewAnalysisHandler(deps.Analyses, deps.Documents, deps.Reports)
	similarityHandler := NewSimilarityHandler(deps.Similarity)
	chatHandler := NewChatHandler(deps.Chats)

	gr.POST("/auth/workspace", authHandler.OpenWorkspace)

	authed := gr.Group("", middleware.JWTAuth(deps.JWTSecret))
	{
		authed.POST("/documents", documentHandler.Upload)
		authed.GET("/documents", documentHandler.List)
		authed.GET("/documents/:id", documentHandler.Get)
		authed.DELETE("/documents/:id", documentHandler.Delete)

		authed.GET("/analyses", analysisHandler.List)
		authed.GET("/analyses/search", analysisHandler.Search)
		authed.GET("/analyses/:id", analysisHandler.Get)
		authed.GET("/analyses/:id/report", analysisHandler.Report)

		authed.POST("/chat/sessions", chatHandler.CreateSession)
		authed.GET("/chat/sessions/:id/messages", chatHandler.Transcript)
		authed.DELETE("/chat/sessions/:id", chatHandler.CloseSession)
	}

	limited := authed.Group("", middleware.RateLimit(deps.RateLimitWindow))
	{
		limited.POST("/documents/:id/analyze", analysisHandler.Analyze)
		limited.POST("/similarity", similarityHandler.Compare)
		limited.POST("/chat/sessions/:id/messages", chatHandler.SendMessage)
	}
}
