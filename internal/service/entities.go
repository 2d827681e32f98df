package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
)

// EntityService manages business entities (customers and suppliers)
type EntityService struct {
	conns ConnectionSource
}

// NewEntityService creates an EntityService
func NewEntityService(conns ConnectionSource) *EntityService {
	return &EntityService{conns: conns}
}

// EntityInput carries the fields for creating or updating a business entity
type EntityInput struct {
	Name      string `json:"name"`
	DocType   string `json:"doc_type"`
	DocNumber string `json:"doc_number"`
	Address   string `json:"address"`
	Phone     string `json:"phone,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
}

// EntityFilter selects business entities for listing. Filter categories combine
// with AND; the text query matches name, document number or phone (OR within
// the search only).
type EntityFilter struct {
	Query          string
	OnlyUnassigned bool
	Page           int
	Limit          int
}

// Create registers a new business entity, enforcing the docType+docNumber
// uniqueness rule.
func (s *EntityService) Create(ctx context.Context, tenantID string, input EntityInput) (*model.BusinessEntity, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var existing model.BusinessEntity
	err = db.WithContext(ctx).
		Where("doc_type = ? AND doc_number = ?", input.DocType, input.DocNumber).
		First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict, "document number is already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "error creating entity", err)
	}

	entity := model.BusinessEntity{
		Name:      input.Name,
		DocType:   input.DocType,
		DocNumber: input.DocNumber,
		Address:   input.Address,
		Phone:     input.Phone,
		Mobile:    input.Mobile,
	}
	if err := db.WithContext(ctx).Create(&entity).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error creating entity", err)
	}
	return &entity, nil
}

// FindAll lists business entities with pagination and optional filters
func (s *EntityService) FindAll(ctx context.Context, tenantID string, filter EntityFilter) (*Page[model.BusinessEntity], error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)

	q := db.WithContext(ctx).Model(&model.BusinessEntity{})

	if filter.OnlyUnassigned {
		q = q.Where("id NOT IN (?)",
			db.Model(&model.User{}).Select("entity_id").Where("entity_id IS NOT NULL"))
	}
	if strings.TrimSpace(filter.Query) != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(doc_number) LIKE ? OR LOWER(phone) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing entities", err)
	}

	var entities []model.BusinessEntity
	if err := q.Preload("User").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entities).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing entities", err)
	}

	return newPage(entities, total, page, limit), nil
}

// FindOne returns one business entity with its linked user
func (s *EntityService) FindOne(ctx context.Context, tenantID string, id uint) (*model.BusinessEntity, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var entity model.BusinessEntity
	err = db.WithContext(ctx).Preload("User").First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "entity not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error finding entity", err)
	}
	return &entity, nil
}

// Update modifies a business entity, re-checking document uniqueness when the
// document fields change.
func (s *EntityService) Update(ctx context.Context, tenantID string, id uint, input EntityInput) (*model.BusinessEntity, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var entity model.BusinessEntity
	err = db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "entity not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating entity", err)
	}

	docType := entity.DocType
	if input.DocType != "" {
		docType = input.DocType
	}
	docNumber := entity.DocNumber
	if input.DocNumber != "" {
		docNumber = input.DocNumber
	}
	if docType != entity.DocType || docNumber != entity.DocNumber {
		var dup model.BusinessEntity
		err = db.WithContext(ctx).
			Where("doc_type = ? AND doc_number = ? AND id <> ?", docType, docNumber, id).
			First(&dup).Error
		if err == nil {
			return nil, apperr.New(apperr.Conflict, "document number is already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.Internal, "error updating entity", err)
		}
	}

	entity.DocType = docType
	entity.DocNumber = docNumber
	if input.Name != "" {
		entity.Name = input.Name
	}
	if input.Address != "" {
		entity.Address = input.Address
	}
	if input.Phone != "" {
		entity.Phone = input.Phone
	}
	if input.Mobile != "" {
		entity.Mobile = input.Mobile
	}

	if err := db.WithContext(ctx).Save(&entity).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating entity", err)
	}
	return &entity, nil
}

// Remove deletes a business entity unless warehouses still reference it
func (s *EntityService) Remove(ctx context.Context, tenantID string, id uint) error {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	var entity model.BusinessEntity
	err = db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "entity not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "error removing entity", err)
	}

	var warehouses int64
	if err := db.WithContext(ctx).Model(&model.Warehouse{}).
		Where("entity_id = ?", id).
		Count(&warehouses).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing entity", err)
	}
	if warehouses > 0 {
		return apperr.New(apperr.Conflict,
			"entity still has warehouses assigned; delete or reassign them first")
	}

	if err := db.WithContext(ctx).Delete(&model.BusinessEntity{}, id).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing entity", err)
	}
	return nil
}
