package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGatedRouter 构造一个带门禁中间件的测试路由
func newGatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(UsernameKey)})
	})
	r.GET("/voter-only", RequireVoter(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(UsernameKey)})
	})
	return r
}

func doRequest(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdminMiddleware(t *testing.T) {
	setupUserTest(t)
	r := newGatedRouter()

	// 没有令牌
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/admin-only", "").Code)

	// 伪造的令牌
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/admin-only", "not.a.token").Code)

	// 选民令牌不能通过管理员门禁
	require.NoError(t, VerifyVoter("voter1"))
	voterToken, err := AuthenticateVoter("voter1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/admin-only", voterToken).Code)

	// 管理员令牌放行
	adminToken, err := AuthenticateAdmin("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, "/admin-only", adminToken).Code)
}

func TestRequireVoterMiddleware(t *testing.T) {
	setupUserTest(t)
	r := newGatedRouter()

	require.NoError(t, VerifyVoter("voter1"))
	voterToken, err := AuthenticateVoter("voter1")
	require.NoError(t, err)

	// 已验证选民放行
	assert.Equal(t, http.StatusOK, doRequest(r, "/voter-only", voterToken).Code)

	// 管理员令牌不能通过选民门禁
	adminToken, err := AuthenticateAdmin("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/voter-only", adminToken).Code)

	// 会话存续期间被移除的选民立即失去权限
	require.NoError(t, RemoveVoter("voter1"))
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/voter-only", voterToken).Code)
}
