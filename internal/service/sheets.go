package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
)

// SheetService manages inventory sheets. It depends on the warehouse and user
// services for cross-entity validation.
type SheetService struct {
	conns      ConnectionSource
	warehouses *WarehouseService
	users      *UserService
}

// NewSheetService creates a SheetService
func NewSheetService(conns ConnectionSource, warehouses *WarehouseService, users *UserService) *SheetService {
	return &SheetService{conns: conns, warehouses: warehouses, users: users}
}

// SheetHeaderInput is the header of an inventory sheet
type SheetHeaderInput struct {
	WarehouseID  uint             `json:"warehouse_id"`
	EmissionDate time.Time        `json:"emission_date"`
	Serie        string           `json:"serie"`
	SheetNumber  string           `json:"sheet_number"`
	State        model.SheetState `json:"state"`
}

// SheetDetailInput is one detail line of an inventory sheet
type SheetDetailInput struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
}

// SheetInput carries a sheet header with its detail lines
type SheetInput struct {
	Sheet   SheetHeaderInput   `json:"sheet"`
	Details []SheetDetailInput `json:"details"`
}

// SheetFilter selects inventory sheets for listing. Distinct filter categories
// combine with AND; the text query matches issuing-user username, warehouse
// name or linked entity name (OR within the search only).
type SheetFilter struct {
	Query       string
	WarehouseID uint
	EntityID    uint
	DateFrom    *time.Time
	DateTo      *time.Time
	State       model.SheetState
	Page        int
	Limit       int
}

// Create registers an inventory sheet after validating the warehouse and the
// issuing user exist.
func (s *SheetService) Create(ctx context.Context, tenantID string, input SheetInput, userID uint) (*model.InventorySheet, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindOne(ctx, tenantID, userID); err != nil {
		return nil, err
	}
	if _, err := s.warehouses.FindOne(ctx, tenantID, input.Sheet.WarehouseID); err != nil {
		return nil, err
	}

	state := input.Sheet.State
	if state == "" {
		state = model.SheetRegistered
	}

	sheet := model.InventorySheet{
		WarehouseID:  input.Sheet.WarehouseID,
		UserID:       userID,
		EmissionDate: input.Sheet.EmissionDate,
		Serie:        input.Sheet.Serie,
		SheetNumber:  input.Sheet.SheetNumber,
		State:        state,
		Details:      detailsFromInput(input.Details),
	}

	if err := db.WithContext(ctx).Create(&sheet).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error creating inventory sheet", err)
	}
	return &sheet, nil
}

func detailsFromInput(inputs []SheetDetailInput) []model.InventorySheetDetail {
	details := make([]model.InventorySheetDetail, 0, len(inputs))
	for _, d := range inputs {
		details = append(details, model.InventorySheetDetail{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			Unit:      d.Unit,
			Price:     d.Price,
		})
	}
	return details
}

// FindAll lists inventory sheets with pagination and the typed filter
func (s *SheetService) FindAll(ctx context.Context, tenantID string, filter SheetFilter) (*Page[model.InventorySheet], error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)

	q := db.WithContext(ctx).Model(&model.InventorySheet{}).
		Joins("LEFT JOIN warehouses ON warehouses.id = inventory_sheets.warehouse_id").
		Joins("LEFT JOIN users ON users.id = inventory_sheets.user_id").
		Joins("LEFT JOIN business_entities ON business_entities.id = users.entity_id")

	if strings.TrimSpace(filter.Query) != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(users.username) LIKE ? OR LOWER(warehouses.name) LIKE ? OR LOWER(business_entities.name) LIKE ?",
			like, like, like)
	}
	if filter.WarehouseID != 0 {
		q = q.Where("inventory_sheets.warehouse_id = ?", filter.WarehouseID)
	}
	if filter.EntityID != 0 {
		q = q.Where("business_entities.id = ?", filter.EntityID)
	}
	if filter.DateFrom != nil {
		q = q.Where("inventory_sheets.emission_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("inventory_sheets.emission_date <= ?", *filter.DateTo)
	}
	if filter.State != "" {
		q = q.Where("inventory_sheets.state = ?", filter.State)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing inventory sheets", err)
	}

	var sheets []model.InventorySheet
	if err := q.Preload("Warehouse").
		Preload("Details").
		Preload("User").
		Preload("User.EntityRelation").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sheets).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing inventory sheets", err)
	}

	return newPage(sheets, total, page, limit), nil
}

// FindOne returns one inventory sheet with warehouse, user and details
func (s *SheetService) FindOne(ctx context.Context, tenantID string, id uint) (*model.InventorySheet, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var sheet model.InventorySheet
	err = db.WithContext(ctx).
		Preload("Warehouse").
		Preload("Details").
		Preload("User").
		First(&sheet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "inventory sheet not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error finding inventory sheet", err)
	}
	return &sheet, nil
}

// Update modifies a sheet's header and replaces its detail lines
func (s *SheetService) Update(ctx context.Context, tenantID string, id uint, input SheetInput, userID uint) (*model.InventorySheet, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var sheet model.InventorySheet
	err = db.WithContext(ctx).First(&sheet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "inventory sheet not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating inventory sheet", err)
	}

	if _, err := s.warehouses.FindOne(ctx, tenantID, input.Sheet.WarehouseID); err != nil {
		return nil, err
	}

	sheet.WarehouseID = input.Sheet.WarehouseID
	sheet.UserID = userID
	sheet.EmissionDate = input.Sheet.EmissionDate
	sheet.Serie = input.Sheet.Serie
	sheet.SheetNumber = input.Sheet.SheetNumber
	if input.Sheet.State != "" {
		sheet.State = input.Sheet.State
	}

	if err := db.WithContext(ctx).Save(&sheet).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating inventory sheet", err)
	}

	if len(input.Details) > 0 {
		if err := db.WithContext(ctx).
			Where("sheet_id = ?", id).
			Delete(&model.InventorySheetDetail{}).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "error updating inventory sheet", err)
		}
		details := detailsFromInput(input.Details)
		for i := range details {
			details[i].SheetID = id
		}
		if err := db.WithContext(ctx).Create(&details).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "error updating inventory sheet", err)
		}
	}

	return s.FindOne(ctx, tenantID, id)
}

// Remove deletes an inventory sheet and its detail lines
func (s *SheetService) Remove(ctx context.Context, tenantID string, id uint) error {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	var sheet model.InventorySheet
	err = db.WithContext(ctx).First(&sheet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "inventory sheet not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "error removing inventory sheet", err)
	}

	if err := db.WithContext(ctx).
		Where("sheet_id = ?", id).
		Delete(&model.InventorySheetDetail{}).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing inventory sheet", err)
	}
	if err := db.WithContext(ctx).Delete(&model.InventorySheet{}, id).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing inventory sheet", err)
	}
	return nil
}
