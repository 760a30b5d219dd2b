package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clientwatch-team/clientwatch/internal/infrastructure/http/middleware"
	"github.com/clientwatch-team/clientwatch/pkg/config"
	"github.com/clientwatch-team/clientwatch/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	jwtManager       *jwt.Manager
	webhookHandler   *FathomWebhook
	clientHandler    *Client
	analysisHandler  *Analysis
	podLeaderHandler *PodLeader
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	jwtManager *jwt.Manager,
	webhookHandler *FathomWebhook,
	clientHandler *Client,
	analysisHandler *Analysis,
	podLeaderHandler *PodLeader,
) *Router {
	return &Router{
		cfg:              cfg,
		jwtManager:       jwtManager,
		webhookHandler:   webhookHandler,
		clientHandler:    clientHandler,
		analysisHandler:  analysisHandler,
		podLeaderHandler: podLeaderHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupWebhookRoutes(v1)

	auth := middleware.EchoAuth(rt.jwtManager)
	rt.setupClientRoutes(v1, auth)
	rt.setupAnalysisRoutes(v1, auth)
	rt.setupPodLeaderRoutes(v1, auth)
}

// setupWebhookRoutes configures inbound webhook routes. Webhooks
// authenticate with the signature header, not a bearer token. Non-POST
// requests get echo's default 405.
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	g.POST("/webhooks/fathom", rt.webhookHandler.Handle)
}

// setupClientRoutes configures client profile routes
func (rt *Router) setupClientRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	clients := g.Group("/clients", auth)

	clients.POST("", rt.clientHandler.Create)
	clients.GET("", rt.clientHandler.List)
	clients.GET("/:id", rt.clientHandler.Get)
	clients.PUT("/:id", rt.clientHandler.Update)
	clients.PATCH("/:id", rt.clientHandler.Update)

	clients.GET("/:id/mapping", rt.clientHandler.GetMapping)
	clients.PUT("/:id/mapping", rt.clientHandler.UpdateMapping)
	clients.GET("/:id/notifications", rt.clientHandler.GetNotificationPrefs)
	clients.PUT("/:id/notifications", rt.clientHandler.UpdateNotificationPrefs)
	clients.GET("/:id/queue", rt.clientHandler.GetQueue)
	clients.PUT("/:id/queue/auto-analysis", rt.clientHandler.SetAutoAnalysis)

	clients.POST("/:id/analyses", rt.analysisHandler.Run)
	clients.GET("/:id/analyses", rt.analysisHandler.ListByClient)
	clients.GET("/:id/history", rt.analysisHandler.GetHistory)
}

// setupAnalysisRoutes configures analysis record routes
func (rt *Router) setupAnalysisRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	analyses := g.Group("/analyses", auth)

	analyses.POST("", rt.analysisHandler.RunFromBody)
	analyses.GET("/:id", rt.analysisHandler.Get)
	analyses.POST("/:id/rerun", rt.analysisHandler.Rerun)
	analyses.POST("/:id/transcripts", rt.analysisHandler.AppendTranscripts)
	analyses.POST("/:id/chat", rt.analysisHandler.Chat)

	// Manual Fathom backfill for operators
	g.POST("/sync/fathom", rt.webhookHandler.Sync, auth)
}

// setupPodLeaderRoutes configures pod leader profile routes
func (rt *Router) setupPodLeaderRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	leaders := g.Group("/pod-leaders", auth)

	leaders.GET("/me", rt.podLeaderHandler.Me)
	leaders.PUT("/me", rt.podLeaderHandler.UpdateMe)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "clientwatch-api",
	})
}
