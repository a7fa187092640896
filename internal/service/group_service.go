package service

import (
	"go-group-chat/internal/model"
	"go-group-chat/internal/permission"
	"go-group-chat/internal/repository"
)

// 处理群组和成员相关业务逻辑
type GroupService struct {
	groupRepo  *repository.GroupRepository
	memberRepo *repository.GroupMemberRepository
}

func NewGroupService(groupRepo *repository.GroupRepository, memberRepo *repository.GroupMemberRepository) *GroupService {
	return &GroupService{
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
	}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Avatar      string `json:"avatar"`
	Description string `json:"description"`
}

// 更新请求的字段全部可选，缺失的字段保持原值
type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Avatar      *string `json:"avatar"`
	Description *string `json:"description"`
}

// 创建群组。描述缺省为空串。
// 加群码生成和管理员引导在仓库事务内完成。
func (s *GroupService) CreateGroup(author *model.User, req CreateGroupRequest) (*model.Group, error) {
	group := &model.Group{
		Name:        req.Name,
		Image:       req.Avatar,
		Description: req.Description,
		AuthorID:    &author.ID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// 更新群组。只有群主可以修改，且只有名称、图片和描述可变。
// 权限不足返回ok=false而不是错误，调用方据此回应失败标志。
func (s *GroupService) UpdateGroup(code string, caller *model.User, req UpdateGroupRequest) (bool, error) {
	group, err := s.groupRepo.FindByCode(code)
	if err != nil {
		return false, err
	}
	if group == nil {
		return false, ErrNotFound
	}

	if !permission.IsGroupOwner(group, caller) {
		return false, nil
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Avatar != nil {
		group.Image = *req.Avatar
	}
	if req.Description != nil {
		group.Description = *req.Description
	}

	if err := s.groupRepo.Update(group); err != nil {
		return false, err
	}
	return true, nil
}

// 列出调用者创建的群组
func (s *GroupService) ListAuthoredGroups(caller *model.User) ([]model.Group, error) {
	return s.groupRepo.FindByAuthor(caller.ID)
}

// 将调用者登记为群组成员。只有群主可以走这条路径。
// 已是成员时静默跳过。
func (s *GroupService) AddMember(groupCode string, caller *model.User) error {
	group, err := s.groupRepo.FindByCode(groupCode)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrNotFound
	}
	if !permission.IsGroupOwner(group, caller) {
		return ErrForbidden
	}

	return s.memberRepo.AddMember(group.ID, caller.ID, false)
}

// 列出群组成员。只有群主可见。
func (s *GroupService) ListMembers(groupCode string, caller *model.User) ([]model.GroupMember, error) {
	group, err := s.groupRepo.FindByCode(groupCode)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotFound
	}
	if !permission.IsGroupOwner(group, caller) {
		return nil, ErrForbidden
	}

	return s.memberRepo.FindGroupMembers(group.ID)
}

// 查看单个成员详情。只有群主可见。
func (s *GroupService) GetMember(groupCode string, userID uint, caller *model.User) (*model.GroupMember, error) {
	group, err := s.groupRepo.FindByCode(groupCode)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotFound
	}
	if !permission.IsGroupOwner(group, caller) {
		return nil, ErrForbidden
	}

	member, err := s.memberRepo.FindMemberByUserID(group.ID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}
