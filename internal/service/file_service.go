package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go-group-chat/pkg/config"
	"go-group-chat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileService 管理上传文件的落盘和清理
type FileService struct {
	basePath string
}

// NewFileService 创建新的文件服务
func NewFileService() (*FileService, error) {
	// 从配置中获取存储路径，或使用默认值
	basePath := "uploads"
	if config.GlobalConfig.File.StoragePath != "" {
		basePath = config.GlobalConfig.File.StoragePath
	}

	// 确保目录存在
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileService{basePath: basePath}, nil
}

// StoreFile 保存上传的文件，返回落盘路径。
// 文件名用uuid保证唯一，subdir区分用途(files/avatars/images)。
func (s *FileService) StoreFile(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.basePath, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	// 净化原始文件名
	safeName := strings.ReplaceAll(file.Filename, "/", "_")
	safeName = strings.ReplaceAll(safeName, " ", "_")

	path := filepath.Join(dir, fmt.Sprintf("%s_%s", uuid.NewString(), safeName))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	logger.L.Info("File stored",
		zap.String("name", file.Filename),
		zap.String("path", path),
		zap.Int64("size", file.Size))

	return path, nil
}

// RemoveStoredFile 删除磁盘上的文件。文件不存在视为已清理，不算错误。
func (s *FileService) RemoveStoredFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
