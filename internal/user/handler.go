package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminLoginRequestBody 定义了管理员登录请求体的JSON结构
type AdminLoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VoterLoginRequestBody 定义了选民登录请求体的JSON结构
type VoterLoginRequestBody struct {
	Username string `json:"username" binding:"required"`
}

// RegisterRequestBody 定义了注册选民请求体的JSON结构
type RegisterRequestBody struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// LoginAdmin 处理管理员登录
func LoginAdmin(c *gin.Context) {
	var body AdminLoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	sessionToken, err := AuthenticateAdmin(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": sessionToken, "role": RoleAdmin})
}

// LoginVoter 处理选民登录
func LoginVoter(c *gin.Context) {
	var body VoterLoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	sessionToken, err := AuthenticateVoter(body.Username)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownUser):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotVerified), errors.Is(err, ErrWrongRole):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": sessionToken, "role": RoleVoter})
}

// Logout 处理登出。
// 会话只存在于令牌中，服务端无状态可清理；此端点供界面统一调用。
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "已登出"})
}

// Register 处理管理员注册新选民
func Register(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	if err := RegisterVoter(body.Username, body.DisplayName); err != nil {
		if errors.Is(err, ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册选民失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "选民注册成功"})
}

// Verify 处理管理员验证选民
func Verify(c *gin.Context) {
	username := c.Param("username")

	if err := VerifyVoter(username); err != nil {
		switch {
		case errors.Is(err, ErrUnknownUser):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrWrongRole):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "验证选民失败: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "选民验证成功"})
}

// Remove 处理管理员移除选民
func Remove(c *gin.Context) {
	username := c.Param("username")

	if err := RemoveVoter(username); err != nil {
		switch {
		case errors.Is(err, ErrUnknownUser):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrWrongRole):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "移除选民失败: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "选民已移除"})
}

// List 返回所有选民，供管理界面的选民列表使用
func List(c *gin.Context) {
	voters, err := ListVoters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取选民列表失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"voters": voters})
}
