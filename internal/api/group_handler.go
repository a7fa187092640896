package api

import (
	"errors"
	"net/http"
	"strconv"

	"go-group-chat/internal/model"
	"go-group-chat/internal/service"
	"go-group-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// 创建群组，创建者自动成为管理员成员
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}

	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind CreateGroup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	_, err := h.groupService.CreateGroup(caller, req)
	if err != nil {
		logger.L.Error("Error creating group via service", zap.Error(err), zap.Uint("authorID", caller.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": true})
}

// 更新群组。权限不足时回应失败标志而不是错误状态码，
// 与既有客户端的约定保持一致。
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	code := c.Param("group_code")

	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind UpdateGroup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.groupService.UpdateGroup(code, caller, req)
	if err != nil {
		logger.L.Warn("Error updating group via service", zap.Error(err), zap.String("code", code), zap.Uint("callerID", caller.ID))
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		}
		return
	}

	if !updated {
		c.JSON(http.StatusOK, gin.H{"group_update": "fail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_update": "success"})
}

// 列出调用者创建的群组
func (h *GroupHandler) ListGroups(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}

	groups, err := h.groupService.ListAuthoredGroups(caller)
	if err != nil {
		logger.L.Error("Error getting groups from service", zap.Error(err), zap.Uint("callerID", caller.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}

	responseGroups := make([]gin.H, 0, len(groups))
	for _, g := range groups {
		responseGroups = append(responseGroups, gin.H{
			"code":        g.Code,
			"name":        g.Name,
			"image":       g.Image,
			"description": g.Description,
			"created_at":  g.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"groups": responseGroups})
}

// 群主将自己登记为成员
func (h *GroupHandler) AddGroupMember(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	groupCode := c.Param("group_code")

	err := h.groupService.AddMember(groupCode, caller)
	if err != nil {
		logger.L.Warn("Error adding group member via service", zap.Error(err), zap.String("groupCode", groupCode), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the group owner can add members"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member_added": true})
}

// 列出群组成员
func (h *GroupHandler) ListGroupMembers(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	groupCode := c.Param("group_code")

	members, err := h.groupService.ListMembers(groupCode, caller)
	if err != nil {
		logger.L.Warn("Error listing group members via service", zap.Error(err), zap.String("groupCode", groupCode), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the group owner can list members"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": memberListResponse(members)})
}

// 查看单个成员详情
func (h *GroupHandler) GetGroupMember(c *gin.Context) {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return
	}
	groupCode := c.Param("group_code")
	userID, ok := getIDFromParam(c, "id")
	if !ok {
		return
	}

	member, err := h.groupService.GetMember(groupCode, userID, caller)
	if err != nil {
		logger.L.Warn("Error getting group member via service", zap.Error(err), zap.String("groupCode", groupCode), zap.Uint("callerID", caller.ID))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the group owner can view members"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	c.JSON(http.StatusOK, memberResponse(*member))
}

func memberListResponse(members []model.GroupMember) []gin.H {
	response := make([]gin.H, 0, len(members))
	for _, m := range members {
		response = append(response, memberResponse(m))
	}
	return response
}

func memberResponse(m model.GroupMember) gin.H {
	return gin.H{
		"user_id":   m.UserID,
		"username":  m.User.Username,
		"avatar":    m.User.Avatar,
		"is_admin":  m.IsAdmin,
		"joined_at": m.JoinedAt,
	}
}

func getCallerFromContext(c *gin.Context) (*model.User, bool) {
	userValue, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	user, ok := userValue.(*model.User)
	if !ok {
		logger.L.Error("Invalid user type in context", zap.Any("userValue", userValue))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user in context"})
		return nil, false
	}
	return user, true
}

func getIDFromParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id64, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id64), true
}
