package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// RealtimeServer upgrades an authorized request to a workspace websocket connection.
type RealtimeServer interface {
	Serve(w http.ResponseWriter, r *http.Request, workspaceID string) error
}

type realtimeHandler struct {
	server           RealtimeServer
	tokenService     portssvc.TokenSvcFacade
	workspaceService portssvc.WorkspaceAuthorizerSvc
}

// registerRealtimeRoutes registers the websocket endpoint. The JWT arrives in the token query
// parameter, so the route sits outside the authenticated group.
func registerRealtimeRoutes(r *gin.Engine, server RealtimeServer, services *portssvc.ServiceContainer) {
	h := &realtimeHandler{
		server:           server,
		tokenService:     services.TokenService,
		workspaceService: services.Workspace,
	}
	r.GET("/api/v1/ws/workspaces/:workspace_id", h.connect)
}

// connect godoc
// @Summary Workspace realtime channel
// @Description Websocket upgrade. Members receive workspace events and may broadcast JSON messages to each other.
// @Tags realtime
// @Param workspace_id path string true "Workspace ID"
// @Param token query string true "Access token"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /ws/workspaces/{workspace_id} [get]
func (h *realtimeHandler) connect(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	workspaceID := c.Param("workspace_id")

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing token"})
		return
	}
	userID, err := h.tokenService.ParseAccessToken(ctx, token)
	if err != nil {
		logger.Warn("Rejected websocket token", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired token"})
		return
	}
	if _, err := h.workspaceService.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		respondError(c, err, "Websocket membership check failed")
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
	logger.Info("Websocket connection opened")
	if err := h.server.Serve(c.Writer, c.Request, workspaceID); err != nil {
		// The upgrader has already written an HTTP error.
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("Websocket connection closed")
}
