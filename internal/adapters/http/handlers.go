package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studysync/core/internal/application/services"
	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, appLogger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      appLogger,
	}
}

// Register handles account creation
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Registration failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Login failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, response)
}

// RefreshToken handles session token refresh
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	response, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		h.logger.Error("Token refresh failed", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	return c.JSON(http.StatusOK, response)
}

// Logout handles user logout
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := getUserIDFromContext(c)

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		h.logger.Error("Logout failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Logout failed")
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Logged out successfully"})
}

// UserHandler handles user profile requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, appLogger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      appLogger,
	}
}

// GetCurrentUser handles getting current user info
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID := getUserIDFromContext(c)

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Get current user failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateCurrentUser handles updating the current user's profile
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Update user failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// LinkGoogleAccount stores the user's Google refresh token
func (h *UserHandler) LinkGoogleAccount(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.LinkGoogleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.LinkGoogleAccount(c.Request().Context(), userID, req.RefreshToken); err != nil {
		h.logger.Error("Link google account failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Google account linked"})
}

// ImportHandler handles feed import requests
type ImportHandler struct {
	importService *services.ImportService
	syncService   *services.SyncService
	logger        *logger.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *services.ImportService, syncService *services.SyncService, appLogger *logger.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		syncService:   syncService,
		logger:        appLogger,
	}
}

// ImportFeed runs the feed import pipeline for the current user. Fetch and
// parse failures fail the request; synchronization failures are reported
// inside the response body and never change the status code.
func (h *ImportHandler) ImportFeed(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.ImportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.importService.ImportFeed(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Feed import failed", "error", err, "user_id", userID)
		switch {
		case errors.Is(err, entities.ErrFeedUnreachable), errors.Is(err, entities.ErrFeedRejected):
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		case errors.Is(err, entities.ErrFeedMalformed):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Feed import failed")
		}
	}

	return c.JSON(http.StatusOK, response)
}

// Resync re-runs calendar synchronization from the persisted class tree.
func (h *ImportHandler) Resync(c echo.Context) error {
	userID := getUserIDFromContext(c)

	response, err := h.syncService.Resync(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Resync failed", "error", err, "user_id", userID)
		switch {
		case errors.Is(err, entities.ErrNoGoogleAccount):
			return echo.NewHTTPError(http.StatusPreconditionFailed, "No google account linked")
		case errors.Is(err, entities.ErrClassTreeNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "No imported classes to synchronize")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Resync failed")
		}
	}

	return c.JSON(http.StatusOK, response)
}

// ClassHandler handles class tree requests
type ClassHandler struct {
	classService *services.ClassService
	logger       *logger.Logger
}

// NewClassHandler creates a new class handler
func NewClassHandler(classService *services.ClassService, appLogger *logger.Logger) *ClassHandler {
	return &ClassHandler{
		classService: classService,
		logger:       appLogger,
	}
}

// GetClasses returns the current user's class tree
func (h *ClassHandler) GetClasses(c echo.Context) error {
	userID := getUserIDFromContext(c)

	classes, err := h.classService.GetClasses(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Get classes failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve classes")
	}

	return c.JSON(http.StatusOK, classes)
}

// SetAssignmentCompleted toggles an assignment's completion flag
func (h *ClassHandler) SetAssignmentCompleted(c echo.Context) error {
	userID := getUserIDFromContext(c)
	classID := c.Param("classId")
	assignmentID := c.Param("assignmentId")

	var req CompletionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	err := h.classService.SetAssignmentCompleted(c.Request().Context(), userID, classID, assignmentID, req.Completed)
	if err != nil {
		h.logger.Error("Set assignment completion failed", "error", err, "user_id", userID)
		if errors.Is(err, entities.ErrClassTreeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No imported classes")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Assignment updated"})
}

// Utility functions and helper types

func getUserIDFromContext(c echo.Context) uuid.UUID {
	user := c.Get("user")
	if user == nil {
		return uuid.Nil
	}

	if userStr, ok := user.(string); ok {
		userID, _ := uuid.Parse(userStr)
		return userID
	}

	return uuid.Nil
}

// Request/Response types
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CompletionRequest struct {
	Completed bool `json:"completed"`
}
