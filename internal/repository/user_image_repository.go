package repository

import (
	"errors"

	"go-group-chat/internal/model"
	"go-group-chat/pkg/db"

	"gorm.io/gorm"
)

type UserImageRepository struct {
	db *gorm.DB
}

func NewUserImageRepository() *UserImageRepository {
	return &UserImageRepository{db: db.DB}
}

func (r *UserImageRepository) Create(image *model.UserImage) error {
	return r.db.Create(image).Error
}

func (r *UserImageRepository) FindByID(id uint) (*model.UserImage, error) {
	var image model.UserImage
	err := r.db.First(&image, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// 列出用户的全部图片
func (r *UserImageRepository) FindByUser(userID uint) ([]model.UserImage, error) {
	var images []model.UserImage
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&images).Error
	return images, err
}

func (r *UserImageRepository) Delete(id uint) error {
	return r.db.Delete(&model.UserImage{}, id).Error
}
