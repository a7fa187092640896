package repository

import (
	"errors"

	"go-group-chat/internal/model"
	"go-group-chat/pkg/db"

	"gorm.io/gorm"
)

type SentRequestRepository struct {
	db *gorm.DB
}

func NewSentRequestRepository() *SentRequestRepository {
	return &SentRequestRepository{db: db.DB}
}

// 新建入群申请（无状态即待处理）
func (r *SentRequestRepository) Create(request *model.SentRequest) error {
	return r.db.Create(request).Error
}

// 根据ID查找申请
func (r *SentRequestRepository) FindByID(id uint) (*model.SentRequest, error) {
	var request model.SentRequest
	err := r.db.Preload("Group").Preload("Group.Author").First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// 获取群组的所有申请
func (r *SentRequestRepository) FindGroupRequests(groupID uint) ([]model.SentRequest, error) {
	var requests []model.SentRequest
	err := r.db.Where("group_id = ?", groupID).
		Preload("User").
		Order("created_at").
		Find(&requests).Error
	return requests, err
}

// 更新申请状态
func (r *SentRequestRepository) SetStatus(request *model.SentRequest, status int) error {
	request.Status = &status
	return r.db.Model(request).Update("status", status).Error
}

// ResolveAndRemove 删除申请记录并落实其结果。
// 删除是申请终结的唯一机制：状态为Accepted的申请在删除时
// 为申请人创建一条普通成员记录，其余状态删除后没有任何副作用。
// 成员创建与记录删除在同一事务内完成。
func (r *SentRequestRepository) ResolveAndRemove(request *model.SentRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if request.Status != nil && *request.Status == model.RequestAccepted {
			if err := addMember(tx, request.GroupID, request.UserID, false); err != nil {
				return err
			}
		}
		return tx.Delete(&model.SentRequest{}, request.ID).Error
	})
}
