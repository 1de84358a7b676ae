package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/SscSPs/produce_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
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
		users.POST("", h.createUser) // Admin only
		users.GET("/me", h.getMe)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates an admin, branch manager or producer login. Admin only.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 409 {object} ErrorResponse "Username taken"
// @Failure 500 {object} ErrorResponse "Failed to create user"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User created successfully", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getMe godoc
// @Summary Current user
// @Description Returns the user the bearer token was issued to.
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User no longer exists"
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), caller.UserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
