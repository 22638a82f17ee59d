package user

import (
	"testing"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"github.com/SlpAus/evoting-backend/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserTest(t *testing.T) {
	t.Helper()
	database.UseTestDB(t)
	require.NoError(t, PrimeDB())
	token.GenerateSecretKey()
	SetCredentialVerifier(NewFixedPairVerifier("admin", "admin"))
}

func TestSeedUsers(t *testing.T) {
	setupUserTest(t)

	admin, err := GetUser("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.True(t, admin.Verified)

	voter, err := GetUser("voter1")
	require.NoError(t, err)
	assert.Equal(t, RoleVoter, voter.Role)
	assert.False(t, voter.Verified)

	// 种子写入是幂等的
	require.NoError(t, PrimeDB())
	voters, err := ListVoters()
	require.NoError(t, err)
	assert.Len(t, voters, 1)
}

func TestAuthenticateAdmin(t *testing.T) {
	setupUserTest(t)

	tokenStr, err := AuthenticateAdmin("admin", "admin")
	require.NoError(t, err)

	payload, err := token.ParseSessionToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "admin", payload.Username)
	assert.Equal(t, string(RoleAdmin), payload.Role)

	_, err = AuthenticateAdmin("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = AuthenticateAdmin("root", "admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateVoter(t *testing.T) {
	setupUserTest(t)

	// 未验证的选民不能登录
	_, err := AuthenticateVoter("voter1")
	assert.ErrorIs(t, err, ErrNotVerified)

	// 不存在的用户
	_, err = AuthenticateVoter("nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)

	// 管理员账号不能走选民登录
	_, err = AuthenticateVoter("admin")
	assert.ErrorIs(t, err, ErrWrongRole)

	// 验证之后可以正常登录
	require.NoError(t, VerifyVoter("voter1"))
	tokenStr, err := AuthenticateVoter("voter1")
	require.NoError(t, err)

	payload, err := token.ParseSessionToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "voter1", payload.Username)
	assert.Equal(t, string(RoleVoter), payload.Role)
}

func TestRegisterVerifyRemoveRoundTrip(t *testing.T) {
	setupUserTest(t)

	require.NoError(t, RegisterVoter("dave", "Dave"))

	// 重复注册被拒绝
	err := RegisterVoter("dave", "Dave Again")
	assert.ErrorIs(t, err, ErrUserExists)

	// 注册后未验证
	u, err := GetUser("dave")
	require.NoError(t, err)
	assert.False(t, u.Verified)

	require.NoError(t, VerifyVoter("dave"))
	u, err = GetUser("dave")
	require.NoError(t, err)
	assert.True(t, u.Verified)

	// 重复验证不是错误
	require.NoError(t, VerifyVoter("dave"))

	require.NoError(t, RemoveVoter("dave"))
	_, err = GetUser("dave")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestVerifyAndRemoveGuards(t *testing.T) {
	setupUserTest(t)

	assert.ErrorIs(t, VerifyVoter("nobody"), ErrUnknownUser)
	assert.ErrorIs(t, VerifyVoter("admin"), ErrWrongRole)
	assert.ErrorIs(t, RemoveVoter("nobody"), ErrUnknownUser)
	// 管理员账号不能作为选民被移除
	assert.ErrorIs(t, RemoveVoter("admin"), ErrWrongRole)
}
