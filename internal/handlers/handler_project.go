package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// projectHandler handles projects and their task lists.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func registerProjectRoutes(rg, workspaceGroup *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := &projectHandler{projectService: projectService}

	workspaceGroup.POST("/projects", h.createProject)
	workspaceGroup.GET("/projects", h.listProjects)

	projects := rg.Group("/projects/:project_id")
	{
		projects.GET("", h.getProject)
		projects.PATCH("", h.updateProject)
		projects.DELETE("", h.deleteProject)
		projects.POST("/task-lists", h.createTaskList)
	}

	lists := rg.Group("/task-lists/:task_list_id")
	{
		lists.PATCH("", h.updateTaskList)
		lists.DELETE("", h.deleteTaskList)
	}
}

// createProject godoc
// @Summary Create a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   project body dto.CreateProjectRequest true "Project"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	project, err := h.projectService.CreateProject(c.Request.Context(), c.Param("workspace_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Project created", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List a workspace's projects
// @Tags projects
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} dto.ProjectResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projects, err := h.projectService.ListProjects(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}

// getProject godoc
// @Summary Get a project with its task lists and their tasks
// @Tags projects
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	project, err := h.projectService.GetProject(c.Request.Context(), c.Param("project_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id} [patch]
func (h *projectHandler) updateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("project_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Removes the project with its lists, tasks, comments and attachments.
// @Tags projects
// @Param   project_id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("project_id"), userID); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// createTaskList godoc
// @Summary Add a task list to a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   list body dto.CreateTaskListRequest true "Task list"
// @Success 201 {object} dto.TaskListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id}/task-lists [post]
func (h *projectHandler) createTaskList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	list, err := h.projectService.CreateTaskList(c.Request.Context(), c.Param("project_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create task list")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskListResponse(list))
}

// updateTaskList godoc
// @Summary Update a task list
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   task_list_id path string true "Task list ID"
// @Param   list body dto.UpdateTaskListRequest true "Fields to update"
// @Success 200 {object} dto.TaskListResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /task-lists/{task_list_id} [patch]
func (h *projectHandler) updateTaskList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	list, err := h.projectService.UpdateTaskList(c.Request.Context(), c.Param("task_list_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update task list")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskListResponse(list))
}

// deleteTaskList godoc
// @Summary Delete a task list and its tasks
// @Tags projects
// @Param   task_list_id path string true "Task list ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /task-lists/{task_list_id} [delete]
func (h *projectHandler) deleteTaskList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.projectService.DeleteTaskList(c.Request.Context(), c.Param("task_list_id"), userID); err != nil {
		respondError(c, err, "Failed to delete task list")
		return
	}
	c.Status(http.StatusNoContent)
}
