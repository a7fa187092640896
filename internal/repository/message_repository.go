package repository

import (
	"errors"

	"go-group-chat/internal/model"
	"go-group-chat/pkg/db"
	"go-group-chat/pkg/utils"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{db: db.DB}
}

// 保存新消息及其附件记录。消息码与加群码共用同一套生成和重试逻辑。
func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return createWithCode(tx, message, func() {
			if message.Code == "" {
				message.Code = utils.GenerateCode()
			}
		}, func() { message.Code = "" })
	})
}

// 通过消息码查找消息
func (r *MessageRepository) FindByCode(code string) (*model.Message, error) {
	var message model.Message
	err := r.db.Preload("Files").Where("code = ?", code).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// 获取群组的聊天记录
func (r *MessageRepository) FindGroupMessages(groupID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Preload("User").  // 预加载发送者信息
		Preload("Files"). // 预加载附件
		Find(&messages).Error
	return messages, err
}

// 根据ID查找附件记录
func (r *MessageRepository) FindFileByID(fileID uint) (*model.MessageFile, error) {
	var file model.MessageFile
	err := r.db.First(&file, fileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

// 删除附件记录。磁盘文件的清理由service层在删除前完成。
func (r *MessageRepository) DeleteFile(fileID uint) error {
	return r.db.Delete(&model.MessageFile{}, fileID).Error
}
