package vote

import (
	"sync"
	"testing"

	"github.com/SlpAus/evoting-backend/internal/candidate"
	"github.com/SlpAus/evoting-backend/internal/election"
	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"github.com/SlpAus/evoting-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupVoteTest 初始化内存数据库并完成全部模块的首次初始化
func setupVoteTest(t *testing.T) {
	t.Helper()
	database.UseTestDB(t)
	require.NoError(t, election.PrimeDB())
	require.NoError(t, user.PrimeDB())
	require.NoError(t, candidate.PrimeCachedDB())
	require.NoError(t, PrimeDB())
}

// candidateByName 按名称取出候选人，测试中作为断言的捷径
func candidateByName(t *testing.T, name string) *candidate.Candidate {
	t.Helper()
	var c candidate.Candidate
	require.NoError(t, database.DB.Where("name = ?", name).First(&c).Error)
	return &c
}

func TestCastVoteRejectedBeforeStart(t *testing.T) {
	setupVoteTest(t)
	require.NoError(t, user.VerifyVoter("voter1"))

	bob := candidateByName(t, "Bob")
	_, err := CastVote("voter1", bob.ID)
	assert.ErrorIs(t, err, ErrElectionNotActive)

	// 所有候选人的票数保持不变
	assert.Equal(t, 0, candidateByName(t, "Alice").Votes)
	assert.Equal(t, 0, candidateByName(t, "Bob").Votes)

	// 未遂的投票不会在已投票集合中留下痕迹
	voted, err := HasVoted("voter1")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestCastVoteRejectedAfterEnd(t *testing.T) {
	setupVoteTest(t)
	require.NoError(t, user.VerifyVoter("voter1"))
	require.NoError(t, election.Start())
	require.NoError(t, election.End())

	bob := candidateByName(t, "Bob")
	_, err := CastVote("voter1", bob.ID)
	assert.ErrorIs(t, err, ErrElectionNotActive)
	assert.Equal(t, 0, candidateByName(t, "Bob").Votes)
}

func TestCastVoteScenarioSingleVoter(t *testing.T) {
	setupVoteTest(t)
	require.NoError(t, user.VerifyVoter("voter1"))
	require.NoError(t, election.Start())

	// voter1 投给 Bob
	bob := candidateByName(t, "Bob")
	newTally, err := CastVote("voter1", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, newTally)
	assert.Equal(t, 0, candidateByName(t, "Alice").Votes)
	assert.Equal(t, 1, candidateByName(t, "Bob").Votes)

	// 再次投票被拒绝，计票不变
	_, err = CastVote("voter1", bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 0, candidateByName(t, "Alice").Votes)
	assert.Equal(t, 1, candidateByName(t, "Bob").Votes)
}

func TestCastVoteUnknownCandidateRollsBack(t *testing.T) {
	setupVoteTest(t)
	require.NoError(t, user.VerifyVoter("voter1"))
	require.NoError(t, election.Start())

	_, err := CastVote("voter1", 9999)
	assert.ErrorIs(t, err, ErrUnknownCandidate)

	// 失败的调用不留下任何部分效果
	voted, err := HasVoted("voter1")
	require.NoError(t, err)
	assert.False(t, voted)

	// 该选民之后仍然可以正常投出一票
	alice := candidateByName(t, "Alice")
	_, err = CastVote("voter1", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, candidateByName(t, "Alice").Votes)
}

func TestCastVoteAgainstRemovedCandidate(t *testing.T) {
	setupVoteTest(t)
	require.NoError(t, election.Start())

	// 两位选民先给 Alice 投了两票
	alice := candidateByName(t, "Alice")
	for _, name := range []string{"v1", "v2"} {
		require.NoError(t, user.RegisterVoter(name, name))
		require.NoError(t, user.VerifyVoter(name))
		_, err := CastVote(name, alice.ID)
		require.NoError(t, err)
	}
	aliceID := alice.ID
	assert.Equal(t, 2, candidateByName(t, "Alice").Votes)

	// 管理员移除 Alice 后，针对其ID的投票得到“候选人不存在”
	require.NoError(t, candidate.DeleteCandidate(aliceID))
	require.NoError(t, user.RegisterVoter("v3", "v3"))
	require.NoError(t, user.VerifyVoter("v3"))
	_, err := CastVote("v3", aliceID)
	assert.ErrorIs(t, err, ErrUnknownCandidate)

	// 历史票数保留在表中（软删除），但默认查询不再看到
	var removed candidate.Candidate
	require.NoError(t, database.DB.Unscoped().First(&removed, aliceID).Error)
	assert.Equal(t, 2, removed.Votes)
	_, err = candidate.GetCandidate(aliceID)
	assert.ErrorIs(t, err, candidate.ErrCandidateNotFound)
}

func TestConcurrentCastSameVoter(t *testing.T) {
	setupVoteTest(t)
	require.NoError(t, user.VerifyVoter("voter1"))
	require.NoError(t, election.Start())

	bob := candidateByName(t, "Bob")

	// 同一选民并发提交多次投票，恰好一次成功，其余全部是“已投过票”
	const attempts = 20
	var wg sync.WaitGroup
	wg.Add(attempts)
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = CastVote("voter1", bob.ID)
		}(i)
	}
	wg.Wait()

	successCount := 0
	for _, err := range errs {
		if err == nil {
			successCount++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyVoted)
		}
	}
	assert.Equal(t, 1, successCount)

	// 成功的那一票恰好被计入一次
	assert.Equal(t, 1, candidateByName(t, "Bob").Votes)
}

func TestRemovingVoterKeepsRecordedTally(t *testing.T) {
	setupVoteTest(t)
	require.NoError(t, election.Start())

	// 注册并验证一个新选民，投出恰好一票
	require.NoError(t, user.RegisterVoter("carol", "Carol"))
	require.NoError(t, user.VerifyVoter("carol"))
	bob := candidateByName(t, "Bob")
	_, err := CastVote("carol", bob.ID)
	require.NoError(t, err)

	// 之后移除该选民：已计入的票数不受影响，投票痕迹作为孤儿记录保留
	require.NoError(t, user.RemoveVoter("carol"))
	assert.Equal(t, 1, candidateByName(t, "Bob").Votes)
	voted, err := HasVoted("carol")
	require.NoError(t, err)
	assert.True(t, voted)
}
