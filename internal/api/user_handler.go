package api

import (
	"errors"
	"net/http"

	"go-group-chat/internal/service"
	"go-group-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	fileService *service.FileService
}

func NewUserHandler(userService *service.UserService, fileService *service.FileService) *UserHandler {
	return &UserHandler{
		userService: userService,
		fileService: fileService,
	}
}

// 已认证的调用者创建新用户
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	_, err := h.userService.CreateUser(req)
	if err != nil {
		logger.L.Warn("Error creating user via service", zap.Error(err))
		if err.Error() == "username already exists" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": true})
}

// 本人更新资料，回显保存后的字段
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(caller.ID, caller, req)
	if err != nil {
		logger.L.Warn("Error updating user via service", zap.Error(err), zap.Uint("userID", caller.ID))
		switch {
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phone":  user.Phone,
		"avatar": user.Avatar,
		"email":  user.Email,
		"bio":    user.Bio,
	})
}

// 列出全部用户
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		logger.L.Error("Error listing users from service", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	responseUsers := make([]gin.H, 0, len(users))
	for _, u := range users {
		responseUsers = append(responseUsers, gin.H{
			"id":       u.ID,
			"username": u.Username,
			"phone":    u.Phone,
			"avatar":   u.Avatar,
			"email":    u.Email,
			"bio":      u.Bio,
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": responseUsers})
}

// 上传用户图片
func (h *UserHandler) UploadImage(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := h.fileService.StoreFile(fileHeader, "images")
	if err != nil {
		logger.L.Error("Error storing user image", zap.Error(err), zap.Uint("userID", caller.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	image, err := h.userService.AddImage(caller.ID, path)
	if err != nil {
		logger.L.Error("Error recording user image", zap.Error(err), zap.Uint("userID", caller.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   image.ID,
		"path": image.Path,
	})
}

// 删除用户图片，磁盘文件一并清理
func (h *UserHandler) DeleteImage(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	imageID, ok := getIDFromParam(c, "id")
	if !ok {
		return
	}

	err := h.userService.DeleteImage(imageID, caller)
	if err != nil {
		logger.L.Warn("Error deleting user image via service", zap.Error(err), zap.Uint("imageID", imageID), zap.Uint("userID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
