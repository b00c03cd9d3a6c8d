package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

type taskAnalyticsHandler struct {
	taskAnalytics portssvc.TaskAnalyticsSvc
}

func registerTaskAnalyticsRoutes(rg, workspaceGroup *gin.RouterGroup, taskAnalytics portssvc.TaskAnalyticsSvc) {
	h := &taskAnalyticsHandler{taskAnalytics: taskAnalytics}

	workspaceGroup.GET("/analytics/tasks/overview", h.overview)
	workspaceGroup.GET("/analytics/user-productivity", h.userProductivity)
	rg.GET("/projects/:project_id/analytics", h.projectAnalytics)
	rg.GET("/analytics/executive-dashboard", h.executiveDashboard)
}

// overview godoc
// @Summary Workspace task overview
// @Tags analytics
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.TaskOverviewResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/analytics/tasks/overview [get]
func (h *taskAnalyticsHandler) overview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	overview, err := h.taskAnalytics.TaskOverview(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute task overview")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskOverviewResponse(*overview))
}

// userProductivity godoc
// @Summary Member productivity ranking
// @Description Manager and above. Highest completion rate first.
// @Tags analytics
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   limit query int false "Members returned" default(10)
// @Success 200 {array} dto.UserProductivityResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/analytics/user-productivity [get]
func (h *taskAnalyticsHandler) userProductivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.UserProductivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	ranked, err := h.taskAnalytics.UserProductivity(c.Request.Context(), c.Param("workspace_id"), params.Limit, userID)
	if err != nil {
		respondError(c, err, "Failed to compute user productivity")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserProductivityResponses(ranked))
}

// projectAnalytics godoc
// @Summary Project completion
// @Tags analytics
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Success 200 {object} dto.ProjectProgressResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id}/analytics [get]
func (h *taskAnalyticsHandler) projectAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	progress, err := h.taskAnalytics.ProjectAnalytics(c.Request.Context(), c.Param("project_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute project analytics")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectProgressResponse(*progress))
}

// executiveDashboard godoc
// @Summary Cross-workspace executive dashboard
// @Tags analytics
// @Produce  json
// @Success 200 {object} dto.ExecutiveDashboardResponse
// @Failure 403 {object} ErrorResponse "Executives only"
// @Security BearerAuth
// @Router /analytics/executive-dashboard [get]
func (h *taskAnalyticsHandler) executiveDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.taskAnalytics.ExecutiveDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build executive dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToExecutiveDashboardResponse(*dashboard))
}
