package user

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"github.com/SlpAus/evoting-backend/pkg/token"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 认证与授权相关的错误
var (
	// ErrInvalidCredentials 表示管理员用户名或口令不正确
	ErrInvalidCredentials = errors.New("用户名或口令不正确")
	// ErrUnknownUser 表示用户不存在
	ErrUnknownUser = errors.New("用户不存在")
	// ErrNotVerified 表示选民尚未通过管理员验证
	ErrNotVerified = errors.New("选民尚未通过验证")
	// ErrWrongRole 表示该操作要求的角色与用户实际角色不符
	ErrWrongRole = errors.New("用户角色不符")
	// ErrUnauthorized 表示缺少有效的会话或会话权限不足
	ErrUnauthorized = errors.New("未授权的操作")
	// ErrUserExists 表示注册的用户名已被占用
	ErrUserExists = errors.New("用户名已存在")
)

// CredentialVerifier 抽象了管理员凭据的校验方式。
// 默认实现校验配置中的固定账号；未来接入真实凭据存储时只需替换此实现。
type CredentialVerifier interface {
	VerifyAdmin(username, secret string) bool
}

// fixedPairVerifier 使用一对固定的用户名/口令进行校验
type fixedPairVerifier struct {
	username string
	password string
}

// VerifyAdmin 使用时间恒定的比较校验凭据，防止时序攻击
func (v fixedPairVerifier) VerifyAdmin(username, secret string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(secret), []byte(v.password)) == 1
	return userOK && passOK
}

// adminVerifier 是模块级的凭据校验器，由setup阶段注入
var adminVerifier CredentialVerifier

// SetCredentialVerifier 注入管理员凭据校验器。
func SetCredentialVerifier(v CredentialVerifier) {
	adminVerifier = v
}

// NewFixedPairVerifier 创建一个校验固定账号的CredentialVerifier。
func NewFixedPairVerifier(username, password string) CredentialVerifier {
	return fixedPairVerifier{username: username, password: password}
}

// newSessionToken 为给定的用户签发一个带会话ID的令牌
func newSessionToken(username string, role Role) (string, error) {
	sessionID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成会话ID: %w", err)
	}
	return token.GenerateSessionToken(token.SessionPayload{
		SessionID: sessionID.String(),
		Username:  username,
		Role:      string(role),
	})
}

// AuthenticateAdmin 校验管理员凭据并签发管理员会话令牌。
// 会话只存在于令牌本身，不做任何持久化。
func AuthenticateAdmin(username, secret string) (string, error) {
	if adminVerifier == nil || !adminVerifier.VerifyAdmin(username, secret) {
		return "", ErrInvalidCredentials
	}
	return newSessionToken(username, RoleAdmin)
}

// AuthenticateVoter 校验选民身份并签发选民会话令牌。
// 要求用户存在、角色为VOTER且已通过验证。
func AuthenticateVoter(username string) (string, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnknownUser
		}
		return "", fmt.Errorf("无法查询用户 %s: %w", username, err)
	}
	if u.Role != RoleVoter {
		return "", ErrWrongRole
	}
	if !u.Verified {
		return "", ErrNotVerified
	}
	return newSessionToken(username, RoleVoter)
}

// GetUser 按用户名读取一条用户记录。
func GetUser(username string) (*User, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("无法查询用户 %s: %w", username, err)
	}
	return &u, nil
}

// RegisterVoter 注册一个新的、未验证的选民。
func RegisterVoter(username, displayName string) error {
	newUser := User{
		Username:    username,
		DisplayName: displayName,
		Role:        RoleVoter,
		Verified:    false,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return fmt.Errorf("无法创建选民 %s: %w", username, err)
	}
	return nil
}

// VerifyVoter 将一个已注册的选民标记为已验证。
// 读取和更新在同一个事务中完成，保证失败时状态不变。
func VerifyVoter(username string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.Where("username = ?", username).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownUser
			}
			return fmt.Errorf("无法查询用户 %s: %w", username, err)
		}
		if u.Role != RoleVoter {
			return ErrWrongRole
		}
		if u.Verified {
			return nil // 重复验证不是错误
		}
		if err := tx.Model(&u).Update("verified", true).Error; err != nil {
			return fmt.Errorf("无法更新用户 %s 的验证状态: %w", username, err)
		}
		return nil
	})
}

// RemoveVoter 删除一个选民记录。
// 只删除users表中的记录；voted_users中的投票痕迹被保留（孤儿记录不是错误），
// 已计入候选人的票数也不受影响。
func RemoveVoter(username string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.Where("username = ?", username).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownUser
			}
			return fmt.Errorf("无法查询用户 %s: %w", username, err)
		}
		if u.Role != RoleVoter {
			return ErrWrongRole
		}
		if err := tx.Delete(&u).Error; err != nil {
			return fmt.Errorf("无法删除选民 %s: %w", username, err)
		}
		return nil
	})
}

// ListVoters 返回所有选民记录，按用户名排序。
func ListVoters() ([]User, error) {
	var voters []User
	if err := database.DB.Where("role = ?", RoleVoter).Order("username asc").Find(&voters).Error; err != nil {
		return nil, fmt.Errorf("无法读取选民列表: %w", err)
	}
	return voters, nil
}
