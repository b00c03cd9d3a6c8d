package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// meetingMinuteHandler handles meeting minutes, their attachments and action items.
type meetingMinuteHandler struct {
	minuteService portssvc.MeetingMinuteSvcFacade
}

func newMeetingMinuteHandler(ms portssvc.MeetingMinuteSvcFacade) *meetingMinuteHandler {
	return &meetingMinuteHandler{minuteService: ms}
}

func registerMeetingMinuteRoutes(rg, workspaceGroup *gin.RouterGroup, minuteService portssvc.MeetingMinuteSvcFacade) {
	h := newMeetingMinuteHandler(minuteService)

	workspaceGroup.POST("/meeting-minutes", h.createMinute)
	workspaceGroup.GET("/meeting-minutes", h.listMinutes)

	minutes := rg.Group("/meeting-minutes/:minute_id")
	{
		minutes.GET("", h.getMinute)
		minutes.PUT("", h.updateMinute)
		minutes.DELETE("", h.deleteMinute)

		minutes.POST("/attachments", h.addAttachment)
		minutes.DELETE("/attachments/:attachment_id", h.deleteAttachment)

		minutes.POST("/action-items", h.addActionItem)
		minutes.PUT("/action-items/:item_id", h.updateActionItem)
		minutes.DELETE("/action-items/:item_id", h.deleteActionItem)
	}
}

// createMinute godoc
// @Summary Record meeting minutes
// @Description Creates minutes with optional inline action items.
// @Tags meeting-minutes
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   minute body dto.CreateMeetingMinuteRequest true "Minutes"
// @Success 201 {object} dto.MeetingMinuteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/meeting-minutes [post]
func (h *meetingMinuteHandler) createMinute(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateMeetingMinuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	minute, err := h.minuteService.CreateMinute(c.Request.Context(), c.Param("workspace_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create meeting minutes")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Meeting minutes created", slog.String("minute_id", minute.MinuteID))
	c.JSON(http.StatusCreated, dto.ToMeetingMinuteResponse(minute))
}

// listMinutes godoc
// @Summary List meeting minutes
// @Tags meeting-minutes
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   date_from query string false "YYYY-MM-DD"
// @Param   date_to query string false "YYYY-MM-DD"
// @Param   search query string false "Matches title or content"
// @Param   skip query int false "Offset" default(0)
// @Param   limit query int false "Page size" default(100)
// @Success 200 {array} dto.MeetingMinuteSummaryResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/meeting-minutes [get]
func (h *meetingMinuteHandler) listMinutes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListMeetingMinutesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	minutes, err := h.minuteService.ListMinutes(c.Request.Context(), c.Param("workspace_id"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list meeting minutes")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingMinuteSummaryResponses(minutes))
}

// getMinute godoc
// @Summary Get meeting minutes
// @Tags meeting-minutes
// @Produce  json
// @Param   minute_id path string true "Minute ID"
// @Success 200 {object} dto.MeetingMinuteResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id} [get]
func (h *meetingMinuteHandler) getMinute(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	minute, err := h.minuteService.GetMinute(c.Request.Context(), c.Param("minute_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get meeting minutes")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingMinuteResponse(minute))
}

// updateMinute godoc
// @Summary Update meeting minutes
// @Tags meeting-minutes
// @Accept  json
// @Produce  json
// @Param   minute_id path string true "Minute ID"
// @Param   minute body dto.UpdateMeetingMinuteRequest true "Fields to update"
// @Success 200 {object} dto.MeetingMinuteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id} [put]
func (h *meetingMinuteHandler) updateMinute(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateMeetingMinuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	minute, err := h.minuteService.UpdateMinute(c.Request.Context(), c.Param("minute_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update meeting minutes")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingMinuteResponse(minute))
}

// deleteMinute godoc
// @Summary Delete meeting minutes
// @Description Creator or manager and above. Stored attachments are removed best effort.
// @Tags meeting-minutes
// @Param   minute_id path string true "Minute ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id} [delete]
func (h *meetingMinuteHandler) deleteMinute(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.minuteService.DeleteMinute(c.Request.Context(), c.Param("minute_id"), userID); err != nil {
		respondError(c, err, "Failed to delete meeting minutes")
		return
	}
	c.Status(http.StatusNoContent)
}

// addAttachment godoc
// @Summary Attach a file to meeting minutes
// @Tags meeting-minutes
// @Accept  multipart/form-data
// @Produce  json
// @Param   minute_id path string true "Minute ID"
// @Param   file formData file true "Document or image"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} ErrorResponse "File type not allowed"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 502 {object} ErrorResponse "Storage failure"
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id}/attachments [post]
func (h *meetingMinuteHandler) addAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	upload, f, ok := formUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	attachment, err := h.minuteService.AddAttachment(c.Request.Context(), c.Param("minute_id"), upload, userID)
	if err != nil {
		respondError(c, err, "Failed to upload attachment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// deleteAttachment godoc
// @Summary Remove an attachment
// @Tags meeting-minutes
// @Param   minute_id path string true "Minute ID"
// @Param   attachment_id path string true "Attachment ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id}/attachments/{attachment_id} [delete]
func (h *meetingMinuteHandler) deleteAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.minuteService.DeleteAttachment(c.Request.Context(), c.Param("minute_id"), c.Param("attachment_id"), userID); err != nil {
		respondError(c, err, "Failed to delete attachment")
		return
	}
	c.Status(http.StatusNoContent)
}

// addActionItem godoc
// @Summary Add an action item
// @Tags meeting-minutes
// @Accept  json
// @Produce  json
// @Param   minute_id path string true "Minute ID"
// @Param   item body dto.CreateActionItemRequest true "Action item"
// @Success 201 {object} dto.ActionItemResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id}/action-items [post]
func (h *meetingMinuteHandler) addActionItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.minuteService.AddActionItem(c.Request.Context(), c.Param("minute_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add action item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToActionItemResponse(item))
}

// updateActionItem godoc
// @Summary Update an action item
// @Tags meeting-minutes
// @Accept  json
// @Produce  json
// @Param   minute_id path string true "Minute ID"
// @Param   item_id path string true "Action item ID"
// @Param   item body dto.UpdateActionItemRequest true "Fields to update"
// @Success 200 {object} dto.ActionItemResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id}/action-items/{item_id} [put]
func (h *meetingMinuteHandler) updateActionItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.minuteService.UpdateActionItem(c.Request.Context(), c.Param("minute_id"), c.Param("item_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update action item")
		return
	}
	c.JSON(http.StatusOK, dto.ToActionItemResponse(item))
}

// deleteActionItem godoc
// @Summary Delete an action item
// @Tags meeting-minutes
// @Param   minute_id path string true "Minute ID"
// @Param   item_id path string true "Action item ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meeting-minutes/{minute_id}/action-items/{item_id} [delete]
func (h *meetingMinuteHandler) deleteActionItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.minuteService.DeleteActionItem(c.Request.Context(), c.Param("minute_id"), c.Param("item_id"), userID); err != nil {
		respondError(c, err, "Failed to delete action item")
		return
	}
	c.Status(http.StatusNoContent)
}
