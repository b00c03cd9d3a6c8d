package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flowhive/flowhive_backend/internal/utils"
)

const apiRequestEvent = "api_request"

// untrackedPrefixes are operational routes that never produce product events.
var untrackedPrefixes = []string{"/health", "/metrics", "/swagger", "/uploads", "/api/v1/ws/"}

func tracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// PosthogMiddleware records one event per successful authenticated API request.
// The matched route template is sent rather than the raw path, and the workspace id
// is lifted out of the route parameters so events can be grouped per workspace.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if posthogClient == nil || !posthogClient.IsInitialized() {
			return
		}
		route := c.FullPath()
		if route == "" || !tracked(route) || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       route,
			"status_code": c.Writer.Status(),
		}
		if ws := c.Param("workspace_id"); ws != "" {
			props["workspace_id"] = ws
		}
		posthogClient.Enqueue(userID, apiRequestEvent, props)
	}
}

// PosthogEvent sends a named product event for the authenticated caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	props := make(map[string]any, len(properties)+1)
	for k, v := range properties {
		props[k] = v
	}
	props["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, props)
}
