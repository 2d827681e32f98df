package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
)

// ProductService manages product master data
type ProductService struct {
	conns ConnectionSource
}

// NewProductService creates a ProductService
func NewProductService(conns ConnectionSource) *ProductService {
	return &ProductService{conns: conns}
}

// ProductInput carries the fields for creating or updating a product
type ProductInput struct {
	Name    string            `json:"name"`
	Unit    model.ProductUnit `json:"unit"`
	Barcode string            `json:"barcode"`
	Price   float64           `json:"price"`
}

// ProductFilter selects products for listing. The text query matches name or
// barcode.
type ProductFilter struct {
	Query string
	Page  int
	Limit int
}

// Create registers a product, enforcing the name+unit pair and barcode
// uniqueness rules.
func (s *ProductService) Create(ctx context.Context, tenantID string, input ProductInput) (*model.Product, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var existing model.Product
	err = db.WithContext(ctx).
		Where("name = ? AND unit = ?", input.Name, input.Unit).
		First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict,
			fmt.Sprintf("a product named %q with unit %q already exists", input.Name, input.Unit))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "error creating product", err)
	}

	err = db.WithContext(ctx).Where("barcode = ?", input.Barcode).First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict,
			fmt.Sprintf("a product with barcode %q already exists", input.Barcode))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "error creating product", err)
	}

	product := model.Product{
		Name:    input.Name,
		Unit:    input.Unit,
		Barcode: input.Barcode,
		Price:   input.Price,
	}
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error creating product", err)
	}
	return &product, nil
}

// FindAll lists products with pagination and an optional name/barcode search
func (s *ProductService) FindAll(ctx context.Context, tenantID string, filter ProductFilter) (*Page[model.Product], error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)

	q := db.WithContext(ctx).Model(&model.Product{})
	if strings.TrimSpace(filter.Query) != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(barcode) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing products", err)
	}

	var products []model.Product
	if err := q.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing products", err)
	}

	return newPage(products, total, page, limit), nil
}

// FindOne returns one product by id
func (s *ProductService) FindOne(ctx context.Context, tenantID string, id uint) (*model.Product, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var product model.Product
	err = db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error finding product", err)
	}
	return &product, nil
}

// FindByBarcode returns one product by barcode
func (s *ProductService) FindByBarcode(ctx context.Context, tenantID, barcode string) (*model.Product, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var product model.Product
	err = db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error finding product", err)
	}
	return &product, nil
}

// Update modifies a product, re-checking both uniqueness rules
func (s *ProductService) Update(ctx context.Context, tenantID string, id uint, input ProductInput) (*model.Product, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var product model.Product
	err = db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating product", err)
	}

	name := product.Name
	if input.Name != "" {
		name = input.Name
	}
	unit := product.Unit
	if input.Unit != "" {
		unit = input.Unit
	}
	if name != product.Name || unit != product.Unit {
		var dup model.Product
		err = db.WithContext(ctx).
			Where("name = ? AND unit = ? AND id <> ?", name, unit, id).
			First(&dup).Error
		if err == nil {
			return nil, apperr.New(apperr.Conflict,
				fmt.Sprintf("another product named %q with unit %q already exists", name, unit))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.Internal, "error updating product", err)
		}
	}

	if input.Barcode != "" && input.Barcode != product.Barcode {
		var dup model.Product
		err = db.WithContext(ctx).
			Where("barcode = ? AND id <> ?", input.Barcode, id).
			First(&dup).Error
		if err == nil {
			return nil, apperr.New(apperr.Conflict,
				fmt.Sprintf("another product with barcode %q already exists", input.Barcode))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.Internal, "error updating product", err)
		}
		product.Barcode = input.Barcode
	}

	product.Name = name
	product.Unit = unit
	if input.Price != 0 {
		product.Price = input.Price
	}

	if err := db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating product", err)
	}
	return &product, nil
}

// Remove deletes a product
func (s *ProductService) Remove(ctx context.Context, tenantID string, id uint) error {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	var product model.Product
	err = db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "error removing product", err)
	}

	if err := db.WithContext(ctx).Delete(&model.Product{}, id).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing product", err)
	}
	return nil
}
