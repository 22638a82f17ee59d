package candidate

import (
	"testing"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCandidateTest(t *testing.T) {
	t.Helper()
	database.UseTestDB(t)
	require.NoError(t, PrimeCachedDB())
}

func TestSeedCandidates(t *testing.T) {
	setupCandidateTest(t)

	candidates, err := ListCandidates()
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// 种子候选人票数为0
	for _, c := range candidates {
		assert.Equal(t, 0, c.Votes)
	}

	// 重复初始化是幂等的
	require.NoError(t, PrimeCachedDB())
	candidates, err = ListCandidates()
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestCreateCandidate(t *testing.T) {
	setupCandidateTest(t)

	created, err := CreateCandidate("Carol", "A fresh perspective")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Votes)

	// 名称唯一
	_, err = CreateCandidate("Carol", "another manifesto")
	assert.ErrorIs(t, err, ErrNameTaken)

	fetched, err := GetCandidate(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carol", fetched.Name)
	assert.Equal(t, "A fresh perspective", fetched.Manifesto)
}

func TestUpdateCandidate(t *testing.T) {
	setupCandidateTest(t)

	created, err := CreateCandidate("Carol", "old manifesto")
	require.NoError(t, err)

	require.NoError(t, UpdateCandidate(created.ID, "Caroline", "new manifesto"))
	fetched, err := GetCandidate(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caroline", fetched.Name)
	assert.Equal(t, "new manifesto", fetched.Manifesto)
	// 修改不影响票数
	assert.Equal(t, 0, fetched.Votes)

	// 改成已占用的名称被拒绝
	err = UpdateCandidate(created.ID, "Alice", "stolen name")
	assert.ErrorIs(t, err, ErrNameTaken)

	// 不存在的ID
	err = UpdateCandidate(9999, "Nobody", "")
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestDeleteCandidate(t *testing.T) {
	setupCandidateTest(t)

	created, err := CreateCandidate("Carol", "")
	require.NoError(t, err)

	require.NoError(t, DeleteCandidate(created.ID))
	_, err = GetCandidate(created.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	// 移除后不再出现在列表中
	candidates, err := ListCandidates()
	require.NoError(t, err)
	for _, c := range candidates {
		assert.NotEqual(t, created.ID, c.ID)
	}

	// 重复移除
	err = DeleteCandidate(created.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}
