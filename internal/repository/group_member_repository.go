package repository

import (
	"errors"

	"go-group-chat/internal/model"
	"go-group-chat/pkg/db"

	"gorm.io/gorm"
)

type GroupMemberRepository struct {
	db *gorm.DB
}

func NewGroupMemberRepository() *GroupMemberRepository {
	return &GroupMemberRepository{db: db.DB}
}

// 将用户添加到群组。(用户,群组)已有成员记录时静默跳过，
// 已有记录的admin标志保持不变。
func (r *GroupMemberRepository) AddMember(groupID, userID uint, isAdmin bool) error {
	return addMember(r.db, groupID, userID, isAdmin)
}

// 查找特定群组的特定成员
func (r *GroupMemberRepository) FindMember(groupID, userID uint) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// 获取群组的所有成员，包含用户信息
func (r *GroupMemberRepository) FindGroupMembers(groupID uint) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.db.Where("group_id = ?", groupID).
		Preload("User").
		Order("joined_at").
		Find(&members).Error
	return members, err
}

// 按用户ID获取群组内的单个成员
func (r *GroupMemberRepository) FindMemberByUserID(groupID, userID uint) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Preload("User").
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// addMember 供仓库方法和事务内的申请处理共用。
// FirstOrCreate依赖复合主键实现幂等：并发重复创建由数据库约束兜底，
// 输掉的一方表现为无副作用。
func addMember(tx *gorm.DB, groupID, userID uint, isAdmin bool) error {
	member := &model.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}
	err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).
		Attrs(model.GroupMember{IsAdmin: isAdmin}).
		FirstOrCreate(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil // 并发写入已存在，视为无操作
	}
	return err
}
