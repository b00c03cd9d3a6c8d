package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)              // manager+
		users.GET("/search", h.searchUsers)     // any authenticated user
		users.GET("/:user_id", h.getUser)       // any authenticated user
		users.PATCH("/:user_id", h.updateUser)  // self or executive
		users.DELETE("/:user_id", h.deleteUser) // executive only
	}
}

// listUsers godoc
// @Summary List users
// @Description Lists users with offset pagination. Requires manager or executive role.
// @Tags users
// @Produce  json
// @Param   skip query int false "Offset" default(0)
// @Param   limit query int false "Page size" default(100)
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ErrorResponse "Not enough permissions"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Skip, userID)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// searchUsers godoc
// @Summary Search users
// @Description Case-insensitive match on email, username or full name.
// @Tags users
// @Produce  json
// @Param   q query string true "Search text"
// @Param   limit query int false "Maximum results" default(10)
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /users/search [get]
func (h *userHandler) searchUsers(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	var params dto.SearchUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	users, err := h.userService.SearchUsers(c.Request.Context(), params.Q, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to search users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce  json
// @Param   user_id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{user_id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Users may update themselves. Only executives may update others or change role and active status.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user_id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{user_id} [patch]
func (h *userHandler) updateUser(c *gin.Context) {
	requestingUserID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("user_id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Tags users
// @Param   user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Cannot delete yourself"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{user_id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	requestingUserID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("user_id")
	if err := h.userService.DeleteUser(c.Request.Context(), targetID, requestingUserID); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted", slog.String("target_user_id", targetID))
	c.Status(http.StatusNoContent)
}
