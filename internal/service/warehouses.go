package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
)

// WarehouseService manages warehouses
type WarehouseService struct {
	conns ConnectionSource
}

// NewWarehouseService creates a WarehouseService
func NewWarehouseService(conns ConnectionSource) *WarehouseService {
	return &WarehouseService{conns: conns}
}

// WarehouseInput carries the fields for creating or updating a warehouse
type WarehouseInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active,omitempty"`
	EntityID *uint  `json:"entity_id,omitempty"`
}

// WarehouseFilter selects warehouses for listing. The text query matches the
// warehouse name.
type WarehouseFilter struct {
	Query string
	Page  int
	Limit int
}

// Create registers a warehouse and assigns it the next sequential serial number
// within the tenant.
func (s *WarehouseService) Create(ctx context.Context, tenantID string, input WarehouseInput) (*model.Warehouse, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var last model.Warehouse
	next := 1
	err = db.WithContext(ctx).Order("serie_warehouse DESC").First(&last).Error
	if err == nil {
		next = last.SerieWarehouse + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "error creating warehouse", err)
	}

	warehouse := model.Warehouse{
		Name:           input.Name,
		Address:        input.Address,
		IsActive:       true,
		SerieWarehouse: next,
		EntityID:       input.EntityID,
	}
	if input.IsActive != nil {
		warehouse.IsActive = *input.IsActive
	}

	if err := db.WithContext(ctx).Create(&warehouse).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error creating warehouse", err)
	}
	return &warehouse, nil
}

// FindAll lists warehouses with pagination and an optional name search
func (s *WarehouseService) FindAll(ctx context.Context, tenantID string, filter WarehouseFilter) (*Page[model.Warehouse], error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)

	q := db.WithContext(ctx).Model(&model.Warehouse{})
	if strings.TrimSpace(filter.Query) != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing warehouses", err)
	}

	var warehouses []model.Warehouse
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&warehouses).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing warehouses", err)
	}

	return newPage(warehouses, total, page, limit), nil
}

// FindByUser returns warehouses that have at least one user assigned
func (s *WarehouseService) FindByUser(ctx context.Context, tenantID string) ([]model.Warehouse, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var warehouses []model.Warehouse
	err = db.WithContext(ctx).
		Where("id IN (?)", db.Table("users_warehouses").Select("warehouse_id")).
		Find(&warehouses).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing warehouses by user", err)
	}
	return warehouses, nil
}

// FindOne returns one warehouse with its inventory sheets
func (s *WarehouseService) FindOne(ctx context.Context, tenantID string, id uint) (*model.Warehouse, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var warehouse model.Warehouse
	err = db.WithContext(ctx).Preload("InventorySheets").First(&warehouse, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "warehouse not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error finding warehouse", err)
	}
	return &warehouse, nil
}

// Update modifies a warehouse
func (s *WarehouseService) Update(ctx context.Context, tenantID string, id uint, input WarehouseInput) (*model.Warehouse, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var warehouse model.Warehouse
	err = db.WithContext(ctx).First(&warehouse, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "warehouse not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating warehouse", err)
	}

	if input.Name != "" {
		warehouse.Name = input.Name
	}
	if input.Address != "" {
		warehouse.Address = input.Address
	}
	if input.IsActive != nil {
		warehouse.IsActive = *input.IsActive
	}
	if input.EntityID != nil {
		warehouse.EntityID = input.EntityID
	}

	if err := db.WithContext(ctx).Save(&warehouse).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating warehouse", err)
	}
	return &warehouse, nil
}

// Remove deletes a warehouse unless inventory sheets still reference it
func (s *WarehouseService) Remove(ctx context.Context, tenantID string, id uint) error {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	var warehouse model.Warehouse
	err = db.WithContext(ctx).First(&warehouse, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "warehouse not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "error removing warehouse", err)
	}

	var sheets int64
	if err := db.WithContext(ctx).Model(&model.InventorySheet{}).
		Where("warehouse_id = ?", id).
		Count(&sheets).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing warehouse", err)
	}
	if sheets > 0 {
		return apperr.New(apperr.Conflict,
			"warehouse still has inventory sheets; delete them first")
	}

	if err := db.WithContext(ctx).Delete(&model.Warehouse{}, id).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing warehouse", err)
	}
	return nil
}
