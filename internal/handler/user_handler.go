package handler

import (
	"errors"
	"fmt"
	"net/http"

	// echo-jwt parses with jwt/v5; the auth package issues with v4.
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "durianfarm/internal/errors"
	"durianfarm/internal/service"
)

// UserHandler routes user requests to the user domain service.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the registration payload. The password travels in
// the password_hash field; clients have always sent it there.
type CreateUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password_hash" form:"password_hash" validate:"required"`
	UserRole int    `json:"user_role" form:"user_role"`
}

// UpdateUserRequest carries optional profile fields.
type UpdateUserRequest struct {
	Username *string `json:"username" form:"username"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email"`
	Password *string `json:"password_hash" form:"password_hash"`
	UserRole *int    `json:"user_role" form:"user_role"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// CreateUser godoc
// @Summary Register a user
// @Tags user
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "Registration data"
// @Success 201 {object} handler.AuthResponse
// @Failure 409 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /user [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, token, err := h.svc.CreateUser(c.Request().Context(), service.UserInput{
		Username: &req.Username,
		Email:    &req.Email,
		Password: &req.Password,
		UserRole: &req.UserRole,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserConflict) {
			return c.JSON(http.StatusConflict, Response{
				Status:  "Conflict",
				Message: "Username or email already exists",
			})
		}
		return fail(c, err, "Error creating user")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Status:  "Created",
		Message: "User was created successfully",
		Result:  user,
		Token:   token,
	})
}

// GetAllUsers godoc
// @Summary List users
// @Tags user
// @Produce json
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /user [get]
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.svc.GetAllUsers(c.Request().Context())
	if err != nil {
		return fail(c, err, "Error fetching users")
	}
	if len(users) == 0 {
		return notFound(c, "No users found")
	}
	return ok(c, "Successfully fetched users", users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "Error retrieving user")
	}
	return ok(c, fmt.Sprintf("Successfully retrieved user with ID %d", id), user)
}

// GetUserByUsername godoc
// @Summary Get user by username
// @Tags user
// @Produce json
// @Param name path string true "Username"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /user/username/{name} [get]
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	username := c.Param("name")
	user, err := h.svc.GetUserByUsername(c.Request().Context(), username)
	if err != nil {
		return fail(c, err, "Error retrieving user by username")
	}
	return ok(c, fmt.Sprintf("Successfully retrieved user with username %s", username), user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags user
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Profile fields"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /user/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		UserRole: req.UserRole,
	})
	if err != nil {
		return fail(c, err, "Error updating user")
	}
	return c.JSON(http.StatusOK, Response{
		Status:  "Updated",
		Message: fmt.Sprintf("User with ID %d updated successfully", id),
		Result:  user,
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return fail(c, err, "Error deleting user")
	}
	return c.JSON(http.StatusOK, Response{
		Status:  "Success",
		Message: fmt.Sprintf("User with ID %d deleted successfully", id),
	})
}

// Login godoc
// @Summary Log in
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} handler.AuthResponse
// @Failure 401 {object} handler.Response
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, token, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, Response{
				Status:  "Unauthorized",
				Message: "Invalid username or password",
			})
		}
		return fail(c, err, "Error logging in")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Status:  "Success",
		Message: "User logged in successfully",
		Result:  user,
		Token:   token,
	})
}

// FarmsForUsername godoc
// @Summary List farms linked to a username
// @Tags user
// @Produce json
// @Param name path string true "Username"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /user/{name}/farms [get]
func (h *UserHandler) FarmsForUsername(c echo.Context) error {
	username := c.Param("name")
	farms, err := h.svc.FarmsForUsername(c.Request().Context(), username)
	if err != nil {
		return fail(c, err, "Error fetching user farms")
	}
	if len(farms) == 0 {
		return notFound(c, fmt.Sprintf("No farms found for user with username %s", username))
	}
	return ok(c, fmt.Sprintf("Successfully fetched farms for user with username %s", username), farms)
}

// Me godoc
// @Summary Return the authenticated token's claims
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.Response
// @Failure 401 {object} handler.Response
// @Router /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	token, okTok := c.Get("user").(*jwt.Token)
	if !okTok {
		return c.JSON(http.StatusUnauthorized, Response{
			Status:  "Unauthorized",
			Message: "invalid token",
		})
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	return ok(c, "Token is valid", claims)
}
