package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/service"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/logger"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

// UserHandler exposes user management endpoints
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a new user in the active tenant
func (h *UserHandler) Create(c echo.Context) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	log := logger.FromEcho(c)

	var input service.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if input.Username == "" || input.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	user, err := h.users.Create(c.Request().Context(), tenantID(c), input)
	if err != nil {
		log.Error("Failed to create user", zap.String("username", input.Username), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("User created",
		zap.String("username", user.Username),
		zap.String("tenant_id", tenantID(c)))
	return c.JSON(http.StatusCreated, user)
}

// AddWarehouses assigns warehouses to a user
func (h *UserHandler) AddWarehouses(c echo.Context) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		WarehouseIDs []uint `json:"warehouse_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.users.AddWarehouses(c.Request().Context(), tenantID(c), id, req.WarehouseIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// List returns every user in the active tenant
func (h *UserHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	users, err := h.users.FindAll(c.Request().Context(), tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user by id
func (h *UserHandler) Get(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.users.FindOne(c.Request().Context(), tenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Update modifies one user
func (h *UserHandler) Update(c echo.Context) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input service.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.users.Update(c.Request().Context(), tenantID(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes one user
func (h *UserHandler) Delete(c echo.Context) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.users.Remove(c.Request().Context(), tenantID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
