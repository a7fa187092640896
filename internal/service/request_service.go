package service

import (
	"errors"

	"go-group-chat/internal/model"
	"go-group-chat/internal/permission"
	"go-group-chat/internal/repository"
)

// 处理入群申请的生命周期
type RequestService struct {
	requestRepo *repository.SentRequestRepository
	groupRepo   *repository.GroupRepository
	memberRepo  *repository.GroupMemberRepository
}

func NewRequestService(
	requestRepo *repository.SentRequestRepository,
	groupRepo *repository.GroupRepository,
	memberRepo *repository.GroupMemberRepository,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
	}
}

type ResolveRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// 发起入群申请。已是成员时拒绝。
func (s *RequestService) CreateRequest(groupCode string, caller *model.User) (*model.SentRequest, error) {
	group, err := s.groupRepo.FindByCode(groupCode)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotFound
	}

	member, err := s.memberRepo.FindMember(group.ID, caller.ID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return nil, errors.New("already a member of this group")
	}

	request := &model.SentRequest{
		UserID:  caller.ID,
		GroupID: group.ID,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// 列出群组的申请。只有群主可见。
func (s *RequestService) ListGroupRequests(groupCode string, caller *model.User) ([]model.SentRequest, error) {
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

	return s.requestRepo.FindGroupRequests(group.ID)
}

// 处理申请：先写入状态，再通过删除记录落实结果。
// 接受的申请在删除时产生普通成员资格，拒绝的只删除记录。
// 只有群主可以处理。
func (s *RequestService) Resolve(requestID uint, caller *model.User, req ResolveRequest) error {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrNotFound
	}
	if !permission.IsGroupOwner(&request.Group, caller) {
		return ErrForbidden
	}

	status := model.RequestRejected
	if req.Status == "accepted" {
		status = model.RequestAccepted
	}
	if err := s.requestRepo.SetStatus(request, status); err != nil {
		return err
	}

	return s.requestRepo.ResolveAndRemove(request)
}
