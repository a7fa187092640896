package service

import (
	"errors"
	"mime/multipart"

	"go-group-chat/internal/model"
	"go-group-chat/internal/permission"
	"go-group-chat/internal/repository"
	"go-group-chat/pkg/logger"

	"go.uber.org/zap"
)

// 处理群消息及附件
type MessageService struct {
	messageRepo *repository.MessageRepository
	groupRepo   *repository.GroupRepository
	memberRepo  *repository.GroupMemberRepository
	fileSvc     *FileService
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	groupRepo *repository.GroupRepository,
	memberRepo *repository.GroupMemberRepository,
	fileSvc *FileService,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		fileSvc:     fileSvc,
	}
}

// 发送群消息，附件先落盘再随消息一并入库。只有群成员可以发言。
func (s *MessageService) SendMessage(groupCode string, caller *model.User, content string, files []*multipart.FileHeader) (*model.Message, error) {
	group, _, err := s.requireMembership(groupCode, caller)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		UserID:  caller.ID,
		GroupID: group.ID,
		Content: content,
	}

	for _, f := range files {
		path, err := s.fileSvc.StoreFile(f, "files")
		if err != nil {
			return nil, err
		}
		message.Files = append(message.Files, model.MessageFile{
			Name: f.Filename,
			Path: path,
		})
	}

	if err := s.messageRepo.Create(message); err != nil {
		// 入库失败时清理已落盘的附件，避免留下没有记录指向的孤儿文件
		for _, f := range message.Files {
			if rmErr := s.fileSvc.RemoveStoredFile(f.Path); rmErr != nil {
				logger.L.Warn("failed to remove stored attachment after create failure",
					zap.String("path", f.Path),
					zap.Error(rmErr))
			}
		}
		return nil, err
	}
	return message, nil
}

// 获取群组的聊天记录。只有群成员可见。
func (s *MessageService) ListGroupMessages(groupCode string, caller *model.User) ([]model.Message, error) {
	group, _, err := s.requireMembership(groupCode, caller)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.FindGroupMessages(group.ID)
}

// 删除消息附件。只有消息作者可以删除。
// 先尽力清理磁盘文件再删除记录；磁盘文件缺失不算失败。
func (s *MessageService) DeleteMessageFile(messageCode string, fileID uint, caller *model.User) error {
	message, err := s.messageRepo.FindByCode(messageCode)
	if err != nil {
		return err
	}
	if message == nil {
		return ErrNotFound
	}
	if !permission.IsOwner(message.UserID, caller) {
		return ErrForbidden
	}

	file, err := s.messageRepo.FindFileByID(fileID)
	if err != nil {
		return err
	}
	if file == nil || file.MessageID != message.ID {
		return ErrNotFound
	}

	if err := s.fileSvc.RemoveStoredFile(file.Path); err != nil {
		logger.L.Warn("failed to remove stored attachment, deleting record anyway",
			zap.String("path", file.Path),
			zap.Error(err))
	}
	return s.messageRepo.DeleteFile(file.ID)
}

func (s *MessageService) requireMembership(groupCode string, caller *model.User) (*model.Group, *model.GroupMember, error) {
	group, err := s.groupRepo.FindByCode(groupCode)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrNotFound
	}

	member, err := s.memberRepo.FindMember(group.ID, caller.ID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, errors.New("you are not a member of this group")
	}
	return group, member, nil
}
