package repository

import (
	"context"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error
	UpdatePrivileges(ctx context.Context, userID uuid.UUID, privileges []model.Privilege) error
	FindAll(ctx context.Context) ([]model.User, error)
	UpdateTokenVersion(ctx context.Context, userID uuid.UUID, version string) error
	UpdateLastSeen(ctx context.Context, userID uuid.UUID) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := GetTx(ctx, r.db).
		Preload("Role").
		Preload("Privileges").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := GetTx(ctx, r.db).
		Preload("Role").
		Preload("Privileges").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return GetTx(ctx, r.db).Create(user).Error
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return GetTx(ctx, r.db).Save(user).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	return GetTx(ctx, r.db).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func (r *userRepo) UpdatePrivileges(ctx context.Context, userID uuid.UUID, privileges []model.Privilege) error {
	db := GetTx(ctx, r.db)
	var user model.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	return db.Model(&user).Association("Privileges").Replace(privileges)
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetTx(ctx, r.db).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := GetTx(ctx, r.db).
		Preload("Role").
		Preload("Privileges").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) UpdateTokenVersion(ctx context.Context, userID uuid.UUID, version string) error {
	return GetTx(ctx, r.db).Model(&model.User{}).
		Where("id = ?", userID).
		Update("token_version", version).Error
}

func (r *userRepo) UpdateLastSeen(ctx context.Context, userID uuid.UUID) error {
	return GetTx(ctx, r.db).Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", gorm.Expr("NOW()")).Error
}
