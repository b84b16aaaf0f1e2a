package repository

import (
	"context"
	"errors"

	"go-pos-backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll(ctx context.Context) ([]model.Role, error)
	FindByID(ctx context.Context, id uint) (*model.Role, error)
	FindByCode(ctx context.Context, code string) (*model.Role, error)
	Create(ctx context.Context, role *model.Role) error
	SeedDefaults(ctx context.Context) error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := GetTx(ctx, r.db).Preload("Privileges").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := GetTx(ctx, r.db).Preload("Privileges").First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByCode(ctx context.Context, code string) (*model.Role, error) {
	var role model.Role
	err := GetTx(ctx, r.db).Preload("Privileges").Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) Create(ctx context.Context, role *model.Role) error {
	return GetTx(ctx, r.db).Create(role).Error
}

func (r *roleRepo) SeedDefaults(ctx context.Context) error {
	db := GetTx(ctx, r.db)
	for _, defaultRole := range model.DefaultRoles {
		var existingRole model.Role
		err := db.Where("code = ?", defaultRole.Code).First(&existingRole).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&defaultRole).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
