package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	GenerateSecretKey()

	payload := SessionPayload{SessionID: "0190cafe", Username: "voter1", Role: "VOTER"}
	tokenStr, err := GenerateSessionToken(payload)
	require.NoError(t, err)

	parsed, err := ParseSessionToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, payload, parsed)
}

func TestTamperedTokenRejected(t *testing.T) {
	GenerateSecretKey()

	tokenStr, err := GenerateSessionToken(SessionPayload{SessionID: "1", Username: "voter1", Role: "VOTER"})
	require.NoError(t, err)

	// 篡改payload部分，签名应当失效
	parts := strings.Split(tokenStr, ".")
	tampered := parts[0][:len(parts[0])-2] + "xx." + parts[1]
	_, err = ParseSessionToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 缺少签名部分
	_, err = ParseSessionToken(parts[0])
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromDifferentKeyRejected(t *testing.T) {
	GenerateSecretKey()
	tokenStr, err := GenerateSessionToken(SessionPayload{SessionID: "2", Username: "admin", Role: "ADMIN"})
	require.NoError(t, err)

	// 密钥轮换后，旧令牌全部失效
	GenerateSecretKey()
	_, err = ParseSessionToken(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
