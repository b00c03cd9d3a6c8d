package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/middleware"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

// reportingHandler handles the field activity report endpoints and the on-demand weekly run.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	scheduler        portssvc.ReportScheduler
	userService      portssvc.UserSvcFacade
	posthog          *utils.PosthogClientWrapper
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) *reportingHandler {
	return &reportingHandler{
		reportingService: services.Reporting,
		scheduler:        services.Scheduler,
		userService:      services.User,
		posthog:          posthog,
	}
}

// registerReportingRoutes registers the workspace report routes and the admin trigger.
func registerReportingRoutes(rg, workspaceGroup *gin.RouterGroup, services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) {
	h := newReportingHandler(services, posthog)

	reportingGroup := workspaceGroup.Group("/reports/field-activities")
	{
		reportingGroup.POST("/send", h.sendReport)
		reportingGroup.GET("/preview", h.previewReport)
		reportingGroup.GET("/export", h.exportReport)
	}

	rg.POST("/admin/reports/weekly/run", h.runWeekly)
}

// sendReport godoc
// @Summary Email a field activity report
// @Description Bulk mode sends one report to the given recipients. Individual mode sends each member their own activities. Manager or above.
// @Tags reports
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param request body dto.SendReportRequest true "Date range and distribution mode"
// @Success 200 {object} dto.IndividualReportResponse "Individual mode"
// @Success 200 {object} dto.BulkReportResponse "Bulk mode"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Email transport failure"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/field-activities/send [post]
func (h *reportingHandler) sendReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SendReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	workspaceID := c.Param("workspace_id")

	result, err := h.reportingService.SendReport(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to send report")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Report distributed",
		slog.String("workspace_id", workspaceID), slog.String("mode", string(result.Mode)))
	middleware.PosthogEvent(c, h.posthog, "field_activity_report_sent", map[string]any{
		"workspace_id": workspaceID,
		"mode":         string(result.Mode),
		"date_from":    req.DateFrom,
		"date_to":      req.DateTo,
	})
	c.JSON(http.StatusOK, dto.ToDistributionResponse(result))
}

// previewReport godoc
// @Summary Preview a field activity report
// @Description Returns the report HTML exactly as it would be emailed. Manager or above.
// @Tags reports
// @Produce html
// @Param workspace_id path string true "Workspace ID"
// @Param date_from query string true "YYYY-MM-DD"
// @Param date_to query string true "YYYY-MM-DD"
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/field-activities/preview [get]
func (h *reportingHandler) previewReport(c *gin.Context) {
	userID, rng, ok := h.bindRange(c)
	if !ok {
		return
	}
	html, err := h.reportingService.PreviewReport(c.Request.Context(), c.Param("workspace_id"), rng, userID)
	if err != nil {
		respondError(c, err, "Failed to compose report")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// exportReport godoc
// @Summary Export a field activity report
// @Description Spreadsheet with a summary sheet and one sheet per staff member. Manager or above.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param workspace_id path string true "Workspace ID"
// @Param date_from query string true "YYYY-MM-DD"
// @Param date_to query string true "YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/field-activities/export [get]
func (h *reportingHandler) exportReport(c *gin.Context) {
	userID, rng, ok := h.bindRange(c)
	if !ok {
		return
	}
	content, err := h.reportingService.ExportReport(c.Request.Context(), c.Param("workspace_id"), rng, userID)
	if err != nil {
		respondError(c, err, "Failed to export report")
		return
	}
	sendWorkbook(c, fmt.Sprintf("field_activity_report_%s_%s.xlsx", rng.FromString(), rng.ToString()), content)
}

// runWeekly godoc
// @Summary Run the weekly report now
// @Description Runs the weekly distribution for the previous Monday to Sunday across all workspaces. Executive only.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.WeeklyRunResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/reports/weekly/run [post]
func (h *reportingHandler) runWeekly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, err, "Failed to load requesting user")
		return
	}
	if !user.Role.AtLeast(domain.RoleExecutive) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only executives can trigger the weekly report"})
		return
	}

	summary, err := h.scheduler.RunWeekly(ctx)
	if err != nil {
		respondError(c, err, "Weekly report run failed")
		return
	}
	middleware.GetLoggerFromCtx(ctx).Info("Weekly report run triggered manually",
		slog.Int("processed", summary.WorkspacesProcessed), slog.Int("failed", summary.WorkspacesFailed))
	c.JSON(http.StatusOK, dto.ToWeeklyRunResponse(summary))
}

func (h *reportingHandler) bindRange(c *gin.Context) (string, domain.DateRange, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return "", domain.DateRange{}, false
	}
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return "", domain.DateRange{}, false
	}
	rng, err := dto.ParseDateRange(params.DateFrom, params.DateTo)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return "", domain.DateRange{}, false
	}
	return userID, rng, true
}
