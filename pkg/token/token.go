package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// secretKey 是一个全局变量，用于存储服务器在启动时生成的32字节密钥。
// 密钥不持久化，因此所有会话在进程退出后自动失效。
var secretKey []byte

// SessionPayload 定义了会话令牌中被签名的数据结构。
// 它在登录成功时生成，并在后续每个请求中被验证。
type SessionPayload struct {
	SessionID string `json:"s"`
	Username  string `json:"u"`
	Role      string `json:"r"`
}

// ErrInvalidToken 表示令牌格式错误或签名验证失败。
var ErrInvalidToken = errors.New("无效的会话令牌")

// GenerateSecretKey 生成一个密码学安全的32字节随机密钥。
func GenerateSecretKey() {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("HMAC密钥已成功生成。")
}

// sign 使用HMAC-SHA256和密钥对payload字节进行签名。
func sign(payloadBytes []byte) []byte {
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	return mac.Sum(nil)
}

// GenerateSessionToken 为一个给定的SessionPayload生成完整的会话令牌。
// 令牌格式为 base64url(payload) + "." + base64url(signature)。
func GenerateSessionToken(payload SessionPayload) (string, error) {
	// 1. 将payload序列化为JSON字符串
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", errors.New("无法序列化会话payload")
	}

	// 2. 使用HMAC-SHA256和密钥对payload进行签名
	signature := sign(payloadBytes)

	// 3. 对两部分分别进行Base64编码，用"."连接
	encodedPayload := base64.RawURLEncoding.EncodeToString(payloadBytes)
	encodedSignature := base64.RawURLEncoding.EncodeToString(signature)
	return encodedPayload + "." + encodedSignature, nil
}

// ParseSessionToken 验证令牌的签名并还原其中的SessionPayload。
func ParseSessionToken(tokenStr string) (SessionPayload, error) {
	var payload SessionPayload

	parts := strings.Split(tokenStr, ".")
	if len(parts) != 2 {
		return payload, ErrInvalidToken
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return payload, ErrInvalidToken
	}
	actualSignature, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return payload, ErrInvalidToken
	}

	// 重新计算预期的签名，并使用hmac.Equal进行时间恒定的比较，防止时序攻击
	expectedSignature := sign(payloadBytes)
	if !hmac.Equal(expectedSignature, actualSignature) {
		return payload, ErrInvalidToken
	}

	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return payload, ErrInvalidToken
	}
	return payload, nil
}
