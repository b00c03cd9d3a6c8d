package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// taskHandler handles tasks with their history, comments and attachments.
type taskHandler struct {
	taskService portssvc.TaskSvcFacade
}

func registerTaskRoutes(rg, workspaceGroup *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	h := &taskHandler{taskService: taskService}

	workspaceGroup.GET("/tasks", h.listTasks)

	rg.POST("/tasks", h.createTask)
	rg.GET("/tasks/my-tasks", h.myTasks)

	tasks := rg.Group("/tasks/:task_id")
	{
		tasks.GET("", h.getTask)
		tasks.PATCH("", h.updateTask)
		tasks.DELETE("", h.deleteTask)
		tasks.GET("/subtasks", h.listSubtasks)
		tasks.GET("/activity", h.listActivity)

		tasks.GET("/comments", h.listComments)
		tasks.POST("/comments", h.addComment)
		tasks.PATCH("/comments/:comment_id", h.updateComment)
		tasks.DELETE("/comments/:comment_id", h.deleteComment)

		tasks.GET("/attachments", h.listAttachments)
		tasks.POST("/attachments", h.addAttachment)
		tasks.DELETE("/attachments/:attachment_id", h.deleteAttachment)
	}
}

// listTasks godoc
// @Summary List a workspace's tasks
// @Tags tasks
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   project_id query string false "Project filter"
// @Param   task_list_id query string false "Task list filter"
// @Param   assignee_id query string false "Assignee filter"
// @Param   status query string false "Status filter"
// @Param   skip query int false "Offset" default(0)
// @Param   limit query int false "Page size" default(100)
// @Success 200 {array} dto.TaskResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/tasks [get]
func (h *taskHandler) listTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListTasksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Param("workspace_id"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

// createTask godoc
// @Summary Create a task or subtask
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   task body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Task list not found"
// @Security BearerAuth
// @Router /tasks [post]
func (h *taskHandler) createTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	task, err := h.taskService.CreateTask(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// myTasks godoc
// @Summary Tasks assigned to the caller
// @Tags tasks
// @Produce  json
// @Param   status query string false "Status filter"
// @Success 200 {array} dto.TaskResponse
// @Security BearerAuth
// @Router /tasks/my-tasks [get]
func (h *taskHandler) myTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.MyTasksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	tasks, err := h.taskService.MyTasks(c.Request.Context(), userID, params.StatusFilter())
	if err != nil {
		respondError(c, err, "Failed to list assigned tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

// getTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id} [get]
func (h *taskHandler) getTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("task_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get task")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// updateTask godoc
// @Summary Update a task
// @Description Changed fields are recorded in the task's activity history.
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Param   task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id} [patch]
func (h *taskHandler) updateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("task_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// deleteTask godoc
// @Summary Delete a task with its subtasks
// @Tags tasks
// @Param   task_id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id} [delete]
func (h *taskHandler) deleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("task_id"), userID); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}
	c.Status(http.StatusNoContent)
}

// listSubtasks godoc
// @Summary List a task's subtasks
// @Tags tasks
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Success 200 {array} dto.TaskResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/subtasks [get]
func (h *taskHandler) listSubtasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tasks, err := h.taskService.ListSubtasks(c.Request.Context(), c.Param("task_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list subtasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

// listActivity godoc
// @Summary A task's history, newest first
// @Tags tasks
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Success 200 {array} dto.TaskActivityResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/activity [get]
func (h *taskHandler) listActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.taskService.ListTaskActivity(c.Request.Context(), c.Param("task_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list task activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskActivityResponses(entries))
}

// listComments godoc
// @Summary List a task's comments
// @Tags tasks
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Success 200 {array} dto.CommentResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/comments [get]
func (h *taskHandler) listComments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	comments, err := h.taskService.ListComments(c.Request.Context(), c.Param("task_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list comments")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// addComment godoc
// @Summary Comment on a task
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Param   comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/comments [post]
func (h *taskHandler) addComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	comment, err := h.taskService.AddComment(c.Request.Context(), c.Param("task_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// updateComment godoc
// @Summary Edit your own comment
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Param   comment_id path string true "Comment ID"
// @Param   comment body dto.UpdateCommentRequest true "New content"
// @Success 200 {object} dto.CommentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/comments/{comment_id} [patch]
func (h *taskHandler) updateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	comment, err := h.taskService.UpdateComment(c.Request.Context(), c.Param("task_id"), c.Param("comment_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update comment")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

// deleteComment godoc
// @Summary Delete your own comment
// @Tags tasks
// @Param   task_id path string true "Task ID"
// @Param   comment_id path string true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/comments/{comment_id} [delete]
func (h *taskHandler) deleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.taskService.DeleteComment(c.Request.Context(), c.Param("task_id"), c.Param("comment_id"), userID); err != nil {
		respondError(c, err, "Failed to delete comment")
		return
	}
	c.Status(http.StatusNoContent)
}

// listAttachments godoc
// @Summary List a task's attachments
// @Tags tasks
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Success 200 {array} dto.TaskAttachmentResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/attachments [get]
func (h *taskHandler) listAttachments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attachments, err := h.taskService.ListTaskAttachments(c.Request.Context(), c.Param("task_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list attachments")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskAttachmentResponses(attachments))
}

// addAttachment godoc
// @Summary Attach a file to a task
// @Tags tasks
// @Accept  multipart/form-data
// @Produce  json
// @Param   task_id path string true "Task ID"
// @Param   file formData file true "Document, spreadsheet, text or image"
// @Success 201 {object} dto.TaskAttachmentResponse
// @Failure 400 {object} ErrorResponse "File type not allowed"
// @Failure 413 {object} ErrorResponse "File too large"
// @Security BearerAuth
// @Router /tasks/{task_id}/attachments [post]
func (h *taskHandler) addAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	upload, f, ok := formUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	attachment, err := h.taskService.AddTaskAttachment(c.Request.Context(), c.Param("task_id"), upload, userID)
	if err != nil {
		respondError(c, err, "Failed to upload attachment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskAttachmentResponse(attachment))
}

// deleteAttachment godoc
// @Summary Remove your own attachment
// @Tags tasks
// @Param   task_id path string true "Task ID"
// @Param   attachment_id path string true "Attachment ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id}/attachments/{attachment_id} [delete]
func (h *taskHandler) deleteAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.taskService.DeleteTaskAttachment(c.Request.Context(), c.Param("task_id"), c.Param("attachment_id"), userID); err != nil {
		respondError(c, err, "Failed to delete attachment")
		return
	}
	c.Status(http.StatusNoContent)
}
