package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// fieldActivityHandler handles field activity CRUD, photos, stats and spreadsheet export.
type fieldActivityHandler struct {
	activityService  portssvc.FieldActivitySvcFacade
	analyticsService portssvc.AnalyticsSvc
	exportService    portssvc.ExportService
}

func newFieldActivityHandler(services *portssvc.ServiceContainer) *fieldActivityHandler {
	return &fieldActivityHandler{
		activityService:  services.FieldActivity,
		analyticsService: services.Analytics,
		exportService:    services.Export,
	}
}

func registerFieldActivityRoutes(rg, workspaceGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newFieldActivityHandler(services)

	scoped := workspaceGroup.Group("/field-activities")
	{
		scoped.POST("", h.createActivity)
		scoped.GET("", h.listActivities)
		scoped.GET("/analytics", h.workspaceStats)
		scoped.GET("/export", h.exportActivities)
	}

	activities := rg.Group("/field-activities/:activity_id")
	{
		activities.GET("", h.getActivity)
		activities.PUT("", h.updateActivity)
		activities.DELETE("", h.deleteActivity)
		activities.POST("/photos", h.addPhoto)
		activities.DELETE("/photos/:photo_id", h.deletePhoto)
	}
}

// createActivity godoc
// @Summary Record a field activity
// @Description Creates an activity in the workspace. Rich text is sanitized and duration derived from start and end times.
// @Tags field-activities
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   activity body dto.CreateFieldActivityRequest true "Activity"
// @Success 201 {object} dto.FieldActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/field-activities [post]
func (h *fieldActivityHandler) createActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateFieldActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	activity, err := h.activityService.CreateActivity(c.Request.Context(), c.Param("workspace_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create field activity")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Field activity created", slog.String("activity_id", activity.ActivityID))
	c.JSON(http.StatusCreated, dto.ToFieldActivityResponse(activity))
}

// listActivities godoc
// @Summary List field activities
// @Description Newest first (date then start time). Rows whose category requires a higher role are excluded.
// @Tags field-activities
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   date_from query string false "YYYY-MM-DD"
// @Param   date_to query string false "YYYY-MM-DD"
// @Param   support_staff_id query string false "Staff user ID"
// @Param   task_category_id query string false "Category ID"
// @Param   customer_name query string false "Case-insensitive substring"
// @Param   search query string false "Case-insensitive substring of the description"
// @Param   status query string false "PENDING, IN_PROGRESS or COMPLETED"
// @Param   location_type query string false "OFFICE or ON_SITE"
// @Param   limit query int false "Page size" default(100)
// @Param   page_token query string false "Token from a previous page"
// @Success 200 {object} dto.ListFieldActivitiesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/field-activities [get]
func (h *fieldActivityHandler) listActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListFieldActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	activities, nextToken, err := h.activityService.ListActivities(c.Request.Context(), c.Param("workspace_id"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list field activities")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFieldActivitiesResponse(activities, nextToken))
}

// workspaceStats godoc
// @Summary Field activity breakdown
// @Description Hours by staff and activity counts by category. Manager or above.
// @Tags field-activities
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   date_from query string false "YYYY-MM-DD"
// @Param   date_to query string false "YYYY-MM-DD"
// @Success 200 {object} dto.WorkspaceActivityStatsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/field-activities/analytics [get]
func (h *fieldActivityHandler) workspaceStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.AnalyticsDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	from, to, err := params.Parse()
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}
	stats, err := h.analyticsService.WorkspaceStats(c.Request.Context(), c.Param("workspace_id"), from, to, userID)
	if err != nil {
		respondError(c, err, "Failed to compute field activity stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceActivityStatsResponse(*stats))
}

// exportActivities godoc
// @Summary Export field activities
// @Description Spreadsheet of the activities visible to the caller in the inclusive date range.
// @Tags field-activities
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   workspace_id path string true "Workspace ID"
// @Param   date_from query string true "YYYY-MM-DD"
// @Param   date_to query string true "YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/field-activities/export [get]
func (h *fieldActivityHandler) exportActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	rng, err := dto.ParseDateRange(params.DateFrom, params.DateTo)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}
	activities, err := h.activityService.ListActivitiesInRange(c.Request.Context(), c.Param("workspace_id"), rng, userID)
	if err != nil {
		respondError(c, err, "Failed to load field activities")
		return
	}
	content, err := h.exportService.ActivitiesWorkbook(activities)
	if err != nil {
		respondError(c, err, "Failed to build export")
		return
	}
	sendWorkbook(c, fmt.Sprintf("field_activities_%s_%s.xlsx", rng.FromString(), rng.ToString()), content)
}

// getActivity godoc
// @Summary Get a field activity
// @Tags field-activities
// @Produce  json
// @Param   activity_id path string true "Activity ID"
// @Success 200 {object} dto.FieldActivityResponse
// @Failure 403 {object} ErrorResponse "Category not visible to the caller"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /field-activities/{activity_id} [get]
func (h *fieldActivityHandler) getActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activity, err := h.activityService.GetActivity(c.Request.Context(), c.Param("activity_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get field activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToFieldActivityResponse(activity))
}

// updateActivity godoc
// @Summary Update a field activity
// @Description Partial update by the creator, the assigned staff member or a manager.
// @Tags field-activities
// @Accept  json
// @Produce  json
// @Param   activity_id path string true "Activity ID"
// @Param   activity body dto.UpdateFieldActivityRequest true "Fields to update"
// @Success 200 {object} dto.FieldActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /field-activities/{activity_id} [put]
func (h *fieldActivityHandler) updateActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateFieldActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	activity, err := h.activityService.UpdateActivity(c.Request.Context(), c.Param("activity_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update field activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToFieldActivityResponse(activity))
}

// deleteActivity godoc
// @Summary Delete a field activity
// @Tags field-activities
// @Param   activity_id path string true "Activity ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /field-activities/{activity_id} [delete]
func (h *fieldActivityHandler) deleteActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.activityService.DeleteActivity(c.Request.Context(), c.Param("activity_id"), userID); err != nil {
		respondError(c, err, "Failed to delete field activity")
		return
	}
	c.Status(http.StatusNoContent)
}

// addPhoto godoc
// @Summary Attach a photo
// @Tags field-activities
// @Accept  multipart/form-data
// @Produce  json
// @Param   activity_id path string true "Activity ID"
// @Param   file formData file true "Image file"
// @Success 201 {object} dto.FieldActivityPhotoResponse
// @Failure 400 {object} ErrorResponse "Not an image"
// @Failure 413 {object} ErrorResponse "File too large"
// @Security BearerAuth
// @Router /field-activities/{activity_id}/photos [post]
func (h *fieldActivityHandler) addPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	upload, f, ok := formUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	photo, err := h.activityService.AddPhoto(c.Request.Context(), c.Param("activity_id"), upload, userID)
	if err != nil {
		respondError(c, err, "Failed to upload photo")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFieldActivityPhotoResponse(photo))
}

// deletePhoto godoc
// @Summary Remove a photo
// @Tags field-activities
// @Param   activity_id path string true "Activity ID"
// @Param   photo_id path string true "Photo ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /field-activities/{activity_id}/photos/{photo_id} [delete]
func (h *fieldActivityHandler) deletePhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.activityService.DeletePhoto(c.Request.Context(), c.Param("activity_id"), c.Param("photo_id"), userID); err != nil {
		respondError(c, err, "Failed to delete photo")
		return
	}
	c.Status(http.StatusNoContent)
}
