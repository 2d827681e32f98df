package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/service"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

// SheetHandler exposes inventory sheet endpoints
type SheetHandler struct {
	sheets *service.SheetService
}

// NewSheetHandler creates a SheetHandler
func NewSheetHandler(sheets *service.SheetService) *SheetHandler {
	return &SheetHandler{sheets: sheets}
}

// Create registers a new inventory sheet issued by the authenticated user
func (h *SheetHandler) Create(c echo.Context) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var input service.SheetInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if input.Sheet.WarehouseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "warehouse_id is required"})
	}

	claims := userClaims(c)
	sheet, err := h.sheets.Create(c.Request().Context(), tenantID(c), input, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "inventory sheet created",
		"sheet":   sheet,
	})
}

// List returns inventory sheets with pagination and the typed filter
func (h *SheetHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	filter := service.SheetFilter{
		Query:       c.QueryParam("query"),
		WarehouseID: queryUint(c, "warehouse_id"),
		EntityID:    queryUint(c, "entity"),
		State:       model.SheetState(c.QueryParam("state")),
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 10),
	}

	if raw := c.QueryParam("date_from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateFrom = &t
		}
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateTo = &t
		}
	}

	page, err := h.sheets.FindAll(c.Request().Context(), tenantID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns one inventory sheet with its details
func (h *SheetHandler) Get(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	sheet, err := h.sheets.FindOne(c.Request().Context(), tenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sheet)
}

// Update modifies a sheet's header and replaces its detail lines
func (h *SheetHandler) Update(c echo.Context) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input service.SheetInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	claims := userClaims(c)
	sheet, err := h.sheets.Update(c.Request().Context(), tenantID(c), id, input, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sheet)
}

// Delete removes one inventory sheet
func (h *SheetHandler) Delete(c echo.Context) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.sheets.Remove(c.Request().Context(), tenantID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "inventory sheet deleted"})
}
