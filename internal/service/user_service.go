package service

import (
	"errors"

	"go-group-chat/internal/model"
	"go-group-chat/internal/permission"
	"go-group-chat/internal/repository"
	"go-group-chat/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// 处理用户资料相关业务逻辑
type UserService struct {
	userRepo  *repository.UserRepository
	imageRepo *repository.UserImageRepository
	fileSvc   *FileService
}

func NewUserService(userRepo *repository.UserRepository, imageRepo *repository.UserImageRepository, fileSvc *FileService) *UserService {
	return &UserService{
		userRepo:  userRepo,
		imageRepo: imageRepo,
		fileSvc:   fileSvc,
	}
}

// 管理端创建用户的请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
}

// 资料更新请求，所有字段可选
type UpdateUserRequest struct {
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Bio    *string `json:"bio"`
}

// 已认证的调用者创建新用户，密码单向哈希后入库
func (s *UserService) CreateUser(req CreateUserRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Bio:      req.Bio,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// 更新用户资料。只有本人可以修改。
func (s *UserService) UpdateUser(targetID uint, caller *model.User, req UpdateUserRequest) (*model.User, error) {
	if !permission.IsOwner(targetID, caller) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// 列出全部用户
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

// 记录用户上传的图片
func (s *UserService) AddImage(userID uint, path string) (*model.UserImage, error) {
	image := &model.UserImage{
		UserID: userID,
		Path:   path,
	}
	if err := s.imageRepo.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}

// 删除图片记录，并尽力清理磁盘文件。
// 磁盘文件缺失或删除失败只记日志，不影响记录删除。
func (s *UserService) DeleteImage(imageID uint, caller *model.User) error {
	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrNotFound
	}
	if !permission.IsOwner(image.UserID, caller) {
		return ErrForbidden
	}

	if err := s.fileSvc.RemoveStoredFile(image.Path); err != nil {
		logger.L.Warn("failed to remove stored image, deleting record anyway",
			zap.String("path", image.Path),
			zap.Error(err))
	}
	return s.imageRepo.Delete(image.ID)
}
