package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// workspaceHandler handles HTTP requests related to workspaces and their members.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

// newWorkspaceHandler creates a new workspaceHandler.
func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
	}
}

// registerWorkspaceRoutes registers routes for workspaces and membership. Workspace-scoped
// resources (categories, activities, reports, minutes) register themselves on the returned group.
func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) *gin.RouterGroup {
	h := newWorkspaceHandler(workspaceService)

	workspacesTopLevel := rg.Group("/workspaces")
	{
		workspacesTopLevel.POST("", h.createWorkspace)
		workspacesTopLevel.GET("", h.listUserWorkspaces)
	}

	workspaceSpecific := rg.Group("/workspaces/:workspace_id")
	{
		workspaceSpecific.GET("", h.getWorkspace)
		workspaceSpecific.PATCH("", h.updateWorkspace)
		workspaceSpecific.DELETE("", h.deleteWorkspace)

		members := workspaceSpecific.Group("/members")
		{
			members.GET("", h.listMembers)
			members.POST("/:user_id", h.addMember)
			members.DELETE("/:user_id", h.removeMember)
		}
	}
	return workspaceSpecific
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a workspace owned by the caller, who also becomes its first member.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creatorUserID, ok := currentUserID(c)
	if !ok {
		return
	}

	newWorkspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create workspace")
		return
	}

	logger.Info("Workspace created successfully", slog.String("workspace_id", newWorkspace.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(newWorkspace))
}

// listUserWorkspaces godoc
// @Summary List workspaces for current user
// @Tags workspaces
// @Produce  json
// @Param   skip query int false "Offset" default(0)
// @Param   limit query int false "Page size" default(100)
// @Success 200 {array} dto.WorkspaceResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listUserWorkspaces(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListWorkspacesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	workspaces, err := h.workspaceService.ListUserWorkspaces(c.Request.Context(), userID, params.Limit, params.Skip)
	if err != nil {
		respondError(c, err, "Failed to list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponses(workspaces))
}

// getWorkspace godoc
// @Summary Get a workspace
// @Description Returns the workspace with its member list. Members only.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	workspaceID := c.Param("workspace_id")

	workspace, err := h.workspaceService.GetWorkspace(ctx, workspaceID, userID)
	if err != nil {
		respondError(c, err, "Failed to get workspace")
		return
	}
	members, err := h.workspaceService.ListMembers(ctx, workspaceID, userID)
	if err != nil {
		respondError(c, err, "Failed to list workspace members")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceDetailResponse(workspace, members))
}

// updateWorkspace godoc
// @Summary Update a workspace
// @Description Partial update. Owner only.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   workspace body dto.UpdateWorkspaceRequest true "Fields to update"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [patch]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), c.Param("workspace_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// deleteWorkspace godoc
// @Summary Delete a workspace
// @Tags workspaces
// @Param   workspace_id path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), c.Param("workspace_id"), userID); err != nil {
		respondError(c, err, "Failed to delete workspace")
		return
	}
	c.Status(http.StatusNoContent)
}

// listMembers godoc
// @Summary List workspace members
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [get]
func (h *workspaceHandler) listMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	members, err := h.workspaceService.ListMembers(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list workspace members")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// addMember godoc
// @Summary Add a user to a workspace
// @Description Requires the workspace owner or a manager-ranked member.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "User to add"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Already a member"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [post]
func (h *workspaceHandler) addMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaceID, targetID := c.Param("workspace_id"), c.Param("user_id")
	if err := h.workspaceService.AddMember(c.Request.Context(), workspaceID, targetID, userID); err != nil {
		respondError(c, err, "Failed to add workspace member")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Member added to workspace",
		slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetID))
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Member added successfully"})
}

// removeMember godoc
// @Summary Remove a user from a workspace
// @Description Owner only.
// @Tags workspaces
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "User to remove"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [delete]
func (h *workspaceHandler) removeMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceService.RemoveMember(c.Request.Context(), c.Param("workspace_id"), c.Param("user_id"), userID); err != nil {
		respondError(c, err, "Failed to remove workspace member")
		return
	}
	c.Status(http.StatusNoContent)
}
