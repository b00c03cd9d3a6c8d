package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

type taskCategoryHandler struct {
	categoryService portssvc.TaskCategorySvcFacade
}

func newTaskCategoryHandler(cs portssvc.TaskCategorySvcFacade) *taskCategoryHandler {
	return &taskCategoryHandler{categoryService: cs}
}

// registerTaskCategoryRoutes registers category routes nested under a workspace plus the
// category-addressed routes.
func registerTaskCategoryRoutes(rg, workspaceGroup *gin.RouterGroup, categoryService portssvc.TaskCategorySvcFacade) {
	h := newTaskCategoryHandler(categoryService)

	workspaceGroup.POST("/task-categories", h.createCategory)
	workspaceGroup.GET("/task-categories", h.listCategories)

	categories := rg.Group("/task-categories/:category_id")
	{
		categories.GET("", h.getCategory)
		categories.PUT("", h.updateCategory)
		categories.DELETE("", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create a task category
// @Tags task-categories
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   category body dto.CreateTaskCategoryRequest true "Category"
// @Success 201 {object} dto.TaskCategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/task-categories [post]
func (h *taskCategoryHandler) createCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTaskCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), c.Param("workspace_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create task category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskCategoryResponse(category))
}

// listCategories godoc
// @Summary List task categories
// @Description Ordered by name. Inactive categories are hidden unless include_inactive is set.
// @Tags task-categories
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   include_inactive query bool false "Include inactive categories"
// @Success 200 {array} dto.TaskCategoryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/task-categories [get]
func (h *taskCategoryHandler) listCategories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListTaskCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), c.Param("workspace_id"), params.IncludeInactive, userID)
	if err != nil {
		respondError(c, err, "Failed to list task categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskCategoryResponses(categories))
}

// getCategory godoc
// @Summary Get a task category
// @Tags task-categories
// @Produce  json
// @Param   category_id path string true "Category ID"
// @Success 200 {object} dto.TaskCategoryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /task-categories/{category_id} [get]
func (h *taskCategoryHandler) getCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategory(c.Request.Context(), c.Param("category_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get task category")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a task category
// @Tags task-categories
// @Accept  json
// @Produce  json
// @Param   category_id path string true "Category ID"
// @Param   category body dto.UpdateTaskCategoryRequest true "Fields to update"
// @Success 200 {object} dto.TaskCategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /task-categories/{category_id} [put]
func (h *taskCategoryHandler) updateCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("category_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update task category")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Deactivate a task category
// @Description Soft delete: the category is marked inactive and stays referenced by existing activities.
// @Tags task-categories
// @Param   category_id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /task-categories/{category_id} [delete]
func (h *taskCategoryHandler) deleteCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("category_id"), userID); err != nil {
		respondError(c, err, "Failed to delete task category")
		return
	}
	c.Status(http.StatusNoContent)
}
