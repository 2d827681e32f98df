package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/tenant"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/logger"
)

// UserService manages users within a tenant and implements the cross-tenant
// lookup used at login.
type UserService struct {
	conns    ConnectionSource
	registry *tenant.Registry
	entities *EntityService
}

// NewUserService creates a UserService
func NewUserService(conns ConnectionSource, registry *tenant.Registry, entities *EntityService) *UserService {
	return &UserService{conns: conns, registry: registry, entities: entities}
}

// CreateUserInput carries the fields for creating a user
type CreateUserInput struct {
	Username     string         `json:"username"`
	Password     string         `json:"password"`
	Role         model.UserRole `json:"role"`
	TenantIDs    []string       `json:"tenant_ids"`
	EntityID     *uint          `json:"entity_relation_id,omitempty"`
	WarehouseIDs []uint         `json:"warehouse_ids,omitempty"`
}

// UpdateUserInput carries the fields for updating a user; nil/empty fields are
// left unchanged.
type UpdateUserInput struct {
	Username     string         `json:"username,omitempty"`
	Password     string         `json:"password,omitempty"`
	Role         model.UserRole `json:"role,omitempty"`
	TenantIDs    []string       `json:"tenant_ids,omitempty"`
	EntityID     *uint          `json:"entity_relation_id,omitempty"`
	WarehouseIDs []uint         `json:"warehouse_ids,omitempty"`
}

// Create registers a user, hashing the password and linking the optional
// business entity and warehouses.
func (s *UserService) Create(ctx context.Context, tenantID string, input CreateUserInput) (*model.User, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var existing model.User
	err = db.WithContext(ctx).Where("username = ?", input.Username).First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict, "username is already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "error creating user", err)
	}

	var entityID *uint
	if input.EntityID != nil {
		entity, err := s.entities.FindOne(ctx, tenantID, *input.EntityID)
		if err != nil {
			return nil, err
		}
		if entity.User != nil {
			return nil, apperr.New(apperr.Conflict, "entity is already assigned to another user")
		}
		entityID = &entity.ID
	}

	var warehouses []model.Warehouse
	if len(input.WarehouseIDs) > 0 {
		if err := db.WithContext(ctx).Where("id IN ?", input.WarehouseIDs).Find(&warehouses).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "error creating user", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error creating user", err)
	}

	user := model.User{
		Username:   input.Username,
		Password:   string(hashed),
		Role:       input.Role,
		TenantIDs:  model.TenantIDList(input.TenantIDs),
		EntityID:   entityID,
		Warehouses: warehouses,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error creating user", err)
	}
	return &user, nil
}

// AddWarehouses assigns additional warehouses to a user
func (s *UserService) AddWarehouses(ctx context.Context, tenantID string, userID uint, warehouseIDs []uint) (*model.User, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = db.WithContext(ctx).Preload("Warehouses").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error adding warehouses", err)
	}

	var warehouses []model.Warehouse
	if err := db.WithContext(ctx).Where("id IN ?", warehouseIDs).Find(&warehouses).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error adding warehouses", err)
	}
	if len(warehouses) != len(warehouseIDs) {
		return nil, apperr.New(apperr.NotFound, "some warehouses were not found")
	}

	if err := db.WithContext(ctx).Model(&user).Association("Warehouses").Append(&warehouses); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error adding warehouses", err)
	}
	return &user, nil
}

// FindAll lists every user with their warehouses and linked entity
func (s *UserService) FindAll(ctx context.Context, tenantID string) ([]model.User, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var users []model.User
	if err := db.WithContext(ctx).
		Preload("Warehouses").
		Preload("EntityRelation").
		Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error listing users", err)
	}
	return users, nil
}

// FindOne returns one user by id
func (s *UserService) FindOne(ctx context.Context, tenantID string, id uint) (*model.User, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = db.WithContext(ctx).
		Preload("Warehouses").
		Preload("EntityRelation").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error finding user", err)
	}
	return &user, nil
}

// FindByUsername returns one user by username within a tenant
func (s *UserService) FindByUsername(ctx context.Context, tenantID, username string) (*model.User, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = db.WithContext(ctx).
		Preload("EntityRelation").
		Preload("Warehouses").
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.UserNotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error finding user", err)
	}
	return &user, nil
}

// FindByUsernameAcrossTenants searches every registered tenant for a user with
// the given username and returns the first match together with the tenant it
// was found in. Only the login path uses this; authenticated requests already
// know their tenant from the token. A tenant whose connection or query fails is
// skipped so one unreachable database does not block logins for the rest.
func (s *UserService) FindByUsernameAcrossTenants(ctx context.Context, username string) (*model.User, string, error) {
	for _, tenantID := range s.registry.All() {
		user, err := s.FindByUsername(ctx, tenantID, username)
		if err != nil {
			if apperr.KindOf(err) != apperr.UserNotFound {
				logger.FromContext(ctx).Warn("skipping tenant during cross-tenant lookup",
					zap.String("tenant_id", tenantID),
					zap.Error(err))
			}
			continue
		}
		return user, tenantID, nil
	}
	return nil, "", apperr.New(apperr.UserNotFound, "user not found")
}

// Update modifies a user, re-applying the same guards as Create
func (s *UserService) Update(ctx context.Context, tenantID string, id uint, input UpdateUserInput) (*model.User, error) {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = db.WithContext(ctx).
		Preload("Warehouses").
		Preload("EntityRelation").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating user", err)
	}

	if input.Username != "" && input.Username != user.Username {
		var dup model.User
		err = db.WithContext(ctx).Where("username = ?", input.Username).First(&dup).Error
		if err == nil {
			return nil, apperr.New(apperr.Conflict, "username is already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.Internal, "error updating user", err)
		}
		user.Username = input.Username
	}

	if input.EntityID != nil {
		entity, err := s.entities.FindOne(ctx, tenantID, *input.EntityID)
		if err != nil {
			return nil, err
		}
		if entity.User != nil && entity.User.ID != user.ID {
			return nil, apperr.New(apperr.Conflict, "entity is already assigned to another user")
		}
		user.EntityID = &entity.ID
	}

	if input.WarehouseIDs != nil {
		var warehouses []model.Warehouse
		if err := db.WithContext(ctx).Where("id IN ?", input.WarehouseIDs).Find(&warehouses).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "error updating user", err)
		}
		if err := db.WithContext(ctx).Model(&user).Association("Warehouses").Replace(&warehouses); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "error updating user", err)
		}
	}

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "error updating user", err)
		}
		user.Password = string(hashed)
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.TenantIDs != nil {
		user.TenantIDs = model.TenantIDList(input.TenantIDs)
	}

	if err := db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error updating user", err)
	}
	return &user, nil
}

// Remove deletes a user
func (s *UserService) Remove(ctx context.Context, tenantID string, id uint) error {
	db, err := s.conns.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	var user model.User
	err = db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "error removing user", err)
	}

	if err := db.WithContext(ctx).Delete(&model.User{}, id).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "error removing user", err)
	}
	return nil
}
