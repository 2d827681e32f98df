package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/service"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

// ProductHandler exposes product endpoints
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create registers a new product
func (h *ProductHandler) Create(c echo.Context) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var input service.ProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if input.Name == "" || input.Barcode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and barcode are required"})
	}

	product, err := h.products.Create(c.Request().Context(), tenantID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// List returns products with pagination and an optional name/barcode search
func (h *ProductHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	filter := service.ProductFilter{
		Query: c.QueryParam("query"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
	}

	page, err := h.products.FindAll(c.Request().Context(), tenantID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns one product by id
func (h *ProductHandler) Get(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.products.FindOne(c.Request().Context(), tenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// GetByBarcode returns one product by barcode
func (h *ProductHandler) GetByBarcode(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	barcode := c.Param("barcode")
	if barcode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "barcode is required"})
	}

	product, err := h.products.FindByBarcode(c.Request().Context(), tenantID(c), barcode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Update modifies one product
func (h *ProductHandler) Update(c echo.Context) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input service.ProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	product, err := h.products.Update(c.Request().Context(), tenantID(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes one product
func (h *ProductHandler) Delete(c echo.Context) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.products.Remove(c.Request().Context(), tenantID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}
