package repository

import (
	"errors"

	"go-group-chat/internal/model"
	"go-group-chat/pkg/config"
	"go-group-chat/pkg/db"
	"go-group-chat/pkg/logger"
	"go-group-chat/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{db: db.DB}
}

// 创建新群组，并在同一事务内将作者添加为管理员成员。
// 加群码在首次保存时生成；撞唯一索引时换一个码重试。
// 注意：调用方预置的码发生冲突时同样会被重新生成，而不是报错。
func (r *GroupRepository) Create(group *model.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := createWithCode(tx, group, func() {
			if group.Code == "" {
				group.Code = utils.GenerateCode()
			}
		}, func() { group.Code = "" }); err != nil {
			return err
		}

		if group.AuthorID == nil {
			return errors.New("group has no author")
		}
		// 将作者添加为管理员成员
		admin := &model.GroupMember{
			GroupID: group.ID,
			UserID:  *group.AuthorID,
			IsAdmin: true,
		}
		return tx.Create(admin).Error
	})
}

// 仅允许修改名称、图片和描述；加群码和作者不可变
func (r *GroupRepository) Update(group *model.Group) error {
	return r.db.Model(group).Select("name", "image", "description").Updates(map[string]interface{}{
		"name":        group.Name,
		"image":       group.Image,
		"description": group.Description,
	}).Error
}

// 通过加群码查找群组
func (r *GroupRepository) FindByCode(code string) (*model.Group, error) {
	var group model.Group
	err := r.db.Preload("Author").Where("code = ?", code).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // group not found
		}
		return nil, err
	}
	return &group, nil
}

// 根据ID查找群组
func (r *GroupRepository) FindByID(groupID uint) (*model.Group, error) {
	var group model.Group
	err := r.db.Preload("Author").First(&group, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// 查找指定用户创建的所有群组
func (r *GroupRepository) FindByAuthor(authorID uint) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

// createWithCode 在有限次重试内完成带唯一码实体的插入。
// assign在每次尝试前生成缺失的码，reset在冲突后清掉码以便重新生成。
// 冲突的码一律丢弃换新，包括调用方预置的码。
func createWithCode(tx *gorm.DB, entity interface{}, assign func(), reset func()) error {
	attempts := config.GlobalConfig.Code.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	var err error
	for i := 0; i < attempts; i++ {
		assign()
		err = tx.Create(entity).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		logger.L.Warn("duplicate code on insert, regenerating", zap.Int("attempt", i+1))
		reset()
	}
	return err
}
