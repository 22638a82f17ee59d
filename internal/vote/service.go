package vote

import (
	"errors"
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/candidate"
	"github.com/SlpAus/evoting-backend/internal/election"
	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 投票相关的错误
var (
	// ErrElectionNotActive 表示投票窗口未开放
	ErrElectionNotActive = errors.New("选举未开放投票")
	// ErrAlreadyVoted 表示该选民已经投过票
	ErrAlreadyVoted = errors.New("该选民已经投过票")
	// ErrUnknownCandidate 表示候选人ID无法解析（不存在或已被移除）
	ErrUnknownCandidate = errors.New("候选人不存在或已被移除")
)

// CastVote 是投票引擎的核心函数，返回候选人的最新票数。
//
// “检查未投票、票数加一、记入已投票集合”必须作为一个原子单元执行：
// 整个序列运行在同一个数据库事务中，候选人行被加上行锁，
// 已投票集合的主键冲突兜底串行化。两个并发的同名投票调用
// 恰好一个提交成功，另一个得到ErrAlreadyVoted；
// 任何一步失败都会回滚全部效果，不会留下
// “已记投票但票数未加”或相反的中间状态。
func CastVote(username string, candidateID uint) (int, error) {
	var newTally int

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 在事务内读取选举状态，保证与后续写入属于同一原子单元
		active, err := election.IsActiveTx(tx)
		if err != nil {
			return err
		}
		if !active {
			return ErrElectionNotActive
		}

		// 2. 锁定候选人行。候选人在途中被移除时，这里解析失败，
		// 事务回滚，本次调用不留下任何效果
		var target candidate.Candidate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&target, candidateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownCandidate
			}
			return fmt.Errorf("无法查询候选人 %d: %w", candidateID, err)
		}

		// 3. 检查已投票集合
		var existing VotedUser
		err = tx.Where("username = ?", username).First(&existing).Error
		if err == nil {
			return ErrAlreadyVoted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("无法查询已投票集合: %w", err)
		}

		// 4. 写入已投票记录。主键冲突意味着另一并发调用抢先提交
		if err := tx.Create(&VotedUser{Username: username}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyVoted
			}
			return fmt.Errorf("无法写入已投票记录: %w", err)
		}

		// 5. 票数恰好加一
		if err := tx.Model(&target).Update("votes", gorm.Expr("votes + ?", 1)).Error; err != nil {
			return fmt.Errorf("无法更新候选人 %d 的票数: %w", candidateID, err)
		}
		newTally = target.Votes + 1

		// 事务提交时，步骤3-5作为一个单元生效
		return nil
	})
	if err != nil {
		return 0, err
	}

	// 数据库提交成功后，尽力同步计票镜像（失败只打警告，镜像可重建）
	candidate.IncrementCachedTally(candidateID)

	return newTally, nil
}

// HasVoted 查询一个选民是否已经投过票。
func HasVoted(username string) (bool, error) {
	var count int64
	if err := database.DB.Model(&VotedUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法查询已投票集合: %w", err)
	}
	return count > 0, nil
}
