package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/service"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

// EntityHandler exposes business entity endpoints
type EntityHandler struct {
	entities *service.EntityService
}

// NewEntityHandler creates an EntityHandler
func NewEntityHandler(entities *service.EntityService) *EntityHandler {
	return &EntityHandler{entities: entities}
}

// Create registers a new business entity
func (h *EntityHandler) Create(c echo.Context) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var input service.EntityInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if input.Name == "" || input.DocType == "" || input.DocNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, doc_type and doc_number are required"})
	}

	entity, err := h.entities.Create(c.Request().Context(), tenantID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, entity)
}

// List returns business entities with pagination and optional filters
func (h *EntityHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	filter := service.EntityFilter{
		Query:          c.QueryParam("query"),
		OnlyUnassigned: c.QueryParam("only_unassigned") == "true",
		Page:           queryInt(c, "page", 1),
		Limit:          queryInt(c, "limit", 10),
	}

	page, err := h.entities.FindAll(c.Request().Context(), tenantID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns one business entity
func (h *EntityHandler) Get(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	entity, err := h.entities.FindOne(c.Request().Context(), tenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entity)
}

// Update modifies one business entity
func (h *EntityHandler) Update(c echo.Context) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input service.EntityInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	entity, err := h.entities.Update(c.Request().Context(), tenantID(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entity)
}

// Delete removes one business entity
func (h *EntityHandler) Delete(c echo.Context) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.entities.Remove(c.Request().Context(), tenantID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "entity deleted"})
}
