package middleware

import (
	"net/http"
	"strings"

	"go-group-chat/internal/model"
	"go-group-chat/internal/repository"
	"go-group-chat/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthMiddleware 同时接受两种认证方案：
//   - "Bearer <jwt>"  基于令牌的会话认证
//   - "Basic <creds>" 基于用户名密码的认证
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		var user *model.User
		switch parts[0] {
		case "Bearer":
			user = bearerUser(c, parts[1])
		case "Basic":
			user = basicUser(c)
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unsupported authorization scheme"})
			c.Abort()
			return
		}
		if user == nil {
			return // 子函数已写好响应并abort
		}

		// 将用户信息存储在上下文中
		c.Set("userID", user.ID)
		c.Set("user", user)

		c.Next()
	}
}

// 解析JWT并加载用户
func bearerUser(c *gin.Context, token string) *model.User {
	claims, err := utils.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		c.Abort()
		return nil
	}

	userRepo := repository.NewUserRepository()
	user, err := userRepo.FindByID(claims.UserID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		c.Abort()
		return nil
	}
	return user
}

// 校验Basic认证的用户名密码
func basicUser(c *gin.Context) *model.User {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid basic auth header"})
		c.Abort()
		return nil
	}

	userRepo := repository.NewUserRepository()
	user, err := userRepo.FindByUsername(username)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		c.Abort()
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		c.Abort()
		return nil
	}
	return user
}
