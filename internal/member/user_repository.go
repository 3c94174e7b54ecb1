package member

import (
	"context"

	"github.com/gcclub/membercard/internal/model"
	"gorm.io/gorm"
)

// UserRepository persists authentication identities.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (u *UserRepository) IsExist(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (u *UserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (u *UserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) UpdateUsername(ctx context.Context, db *gorm.DB, id uint32, username string) error {
	return db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("username", username).Error
}

func (u *UserRepository) UpdatePassword(ctx context.Context, db *gorm.DB, id uint32, hashed string) error {
	return db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hashed).Error
}

func (u *UserRepository) Delete(ctx context.Context, db *gorm.DB, id uint32) error {
	return db.WithContext(ctx).Delete(&model.User{}, id).Error
}
