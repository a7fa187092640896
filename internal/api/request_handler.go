package api

import (
	"errors"
	"net/http"

	"go-group-chat/internal/service"
	"go-group-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RequestHandler struct {
	requestService *service.RequestService
}

func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

// 发起入群申请
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	groupCode := c.Param("group_code")

	request, err := h.requestService.CreateRequest(groupCode, caller)
	if err != nil {
		logger.L.Warn("Error creating join request via service", zap.Error(err), zap.String("groupCode", groupCode), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case err.Error() == "already a member of this group":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request_id": request.ID})
}

// 群主查看群组的入群申请
func (h *RequestHandler) ListGroupRequests(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	groupCode := c.Param("group_code")

	requests, err := h.requestService.ListGroupRequests(groupCode, caller)
	if err != nil {
		logger.L.Warn("Error listing join requests via service", zap.Error(err), zap.String("groupCode", groupCode), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the group owner can view requests"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requests"})
		}
		return
	}

	responseRequests := make([]gin.H, 0, len(requests))
	for _, r := range requests {
		responseRequests = append(responseRequests, gin.H{
			"id":         r.ID,
			"user_id":    r.UserID,
			"username":   r.User.Username,
			"status":     r.Status,
			"created_at": r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"requests": responseRequests})
}

// 群主处理入群申请：接受或拒绝
func (h *RequestHandler) ResolveRequest(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	requestID, ok := getIDFromParam(c, "id")
	if !ok {
		return
	}

	var req service.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind ResolveRequest", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	err := h.requestService.Resolve(requestID, caller, req)
	if err != nil {
		logger.L.Warn("Error resolving join request via service", zap.Error(err), zap.Uint("requestID", requestID), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the group owner can resolve requests"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolved": req.Status})
}
