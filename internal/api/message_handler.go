package api

import (
	"errors"
	"net/http"

	"go-group-chat/internal/service"
	"go-group-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// 发送群消息。multipart表单：content字段 + 可选的files附件。
func (h *MessageHandler) SendMessage(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	groupCode := c.Param("group_code")

	content := c.PostForm("content")
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}
	files := form.File["files"]

	message, err := h.messageService.SendMessage(groupCode, caller, content, files)
	if err != nil {
		logger.L.Warn("Error sending message via service", zap.Error(err), zap.String("groupCode", groupCode), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case err.Error() == "you are not a member of this group":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":       message.Code,
		"content":    message.Content,
		"created_at": message.CreatedAt,
		"files":      len(message.Files),
	})
}

// 获取群组聊天记录
func (h *MessageHandler) ListGroupMessages(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	groupCode := c.Param("group_code")

	messages, err := h.messageService.ListGroupMessages(groupCode, caller)
	if err != nil {
		logger.L.Warn("Error listing messages via service", zap.Error(err), zap.String("groupCode", groupCode), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case err.Error() == "you are not a member of this group":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		}
		return
	}

	responseMessages := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		responseFiles := make([]gin.H, 0, len(m.Files))
		for _, f := range m.Files {
			responseFiles = append(responseFiles, gin.H{
				"id":   f.ID,
				"name": f.Name,
			})
		}
		responseMessages = append(responseMessages, gin.H{
			"code":       m.Code,
			"user_id":    m.UserID,
			"username":   m.User.Username,
			"content":    m.Content,
			"created_at": m.CreatedAt,
			"files":      responseFiles,
		})
	}

	c.JSON(http.StatusOK, gin.H{"messages": responseMessages})
}

// 删除消息附件，磁盘文件一并清理
func (h *MessageHandler) DeleteMessageFile(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	messageCode := c.Param("code")
	fileID, ok := getIDFromParam(c, "id")
	if !ok {
		return
	}

	err := h.messageService.DeleteMessageFile(messageCode, fileID, caller)
	if err != nil {
		logger.L.Warn("Error deleting message file via service", zap.Error(err), zap.String("messageCode", messageCode), zap.Uint("fileID", fileID), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the message author can delete files"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
