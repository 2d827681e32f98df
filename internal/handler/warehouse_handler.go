package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/service"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

// WarehouseHandler exposes warehouse endpoints
type WarehouseHandler struct {
	warehouses *service.WarehouseService
}

// NewWarehouseHandler creates a WarehouseHandler
func NewWarehouseHandler(warehouses *service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses}
}

// Create registers a new warehouse
func (h *WarehouseHandler) Create(c echo.Context) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var input service.WarehouseInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if input.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	warehouse, err := h.warehouses.Create(c.Request().Context(), tenantID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, warehouse)
}

// List returns warehouses with pagination and an optional name search
func (h *WarehouseHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	filter := service.WarehouseFilter{
		Query: c.QueryParam("query"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
	}

	page, err := h.warehouses.FindAll(c.Request().Context(), tenantID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListByUser returns warehouses that have at least one user assigned
func (h *WarehouseHandler) ListByUser(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	warehouses, err := h.warehouses.FindByUser(c.Request().Context(), tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, warehouses)
}

// Get returns one warehouse
func (h *WarehouseHandler) Get(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	warehouse, err := h.warehouses.FindOne(c.Request().Context(), tenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

// Update modifies one warehouse
func (h *WarehouseHandler) Update(c echo.Context) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input service.WarehouseInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	warehouse, err := h.warehouses.Update(c.Request().Context(), tenantID(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

// Delete removes one warehouse
func (h *WarehouseHandler) Delete(c echo.Context) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.warehouses.Remove(c.Request().Context(), tenantID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "warehouse deleted"})
}
