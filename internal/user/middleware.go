package user

import (
	"net/http"
	"strings"

	"github.com/SlpAus/evoting-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	// UsernameKey 是存放在Gin上下文中的当前用户名的键
	UsernameKey = "sessionUsername"
	// RoleKey 是存放在Gin上下文中的当前角色的键
	RoleKey = "sessionRole"
)

// bearerToken 从Authorization头中提取Bearer令牌
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}

// loadSession 解析并验证请求中的会话令牌
func loadSession(c *gin.Context) (token.SessionPayload, bool) {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		return token.SessionPayload{}, false
	}
	payload, err := token.ParseSessionToken(tokenStr)
	if err != nil {
		return token.SessionPayload{}, false
	}
	return payload, true
}

// RequireAdmin 是管理员专用操作的门禁中间件。
// 所有管理员独占的变更（选民验证、候选人增删改、选举启停）都必须经过它。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := loadSession(c)
		if !ok || payload.Role != string(RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Error()})
			return
		}
		c.Set(UsernameKey, payload.Username)
		c.Set(RoleKey, payload.Role)
		c.Next()
	}
}

// RequireVoter 是选民专用操作的门禁中间件。
// 除了校验令牌本身，还会重新确认该选民仍然存在且处于已验证状态，
// 这样在会话存续期间被移除或撤销验证的选民会立即失去权限。
func RequireVoter() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := loadSession(c)
		if !ok || payload.Role != string(RoleVoter) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Error()})
			return
		}

		u, err := GetUser(payload.Username)
		if err != nil || u.Role != RoleVoter || !u.Verified {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Error()})
			return
		}

		c.Set(UsernameKey, payload.Username)
		c.Set(RoleKey, payload.Role)
		c.Next()
	}
}
