package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/SlpAus/evoting-backend/internal/candidate"
	"github.com/SlpAus/evoting-backend/internal/election"
	"github.com/SlpAus/evoting-backend/internal/platform/database"
)

// 结果公布相关的错误
var (
	// ErrElectionStillActive 表示选举尚未结束，不能公布结果
	ErrElectionStillActive = errors.New("选举尚未结束，无法公布结果")
	// ErrNoCandidates 表示没有任何候选人可供公布
	ErrNoCandidates = errors.New("没有任何候选人")
)

// CandidateTally 是实时计票中单个候选人的条目
type CandidateTally struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// Outcome 是选举结果：单一胜者时Winners长度为1，
// 平局时Winners包含所有并列最高票的候选人名称
type Outcome struct {
	Tie     bool     `json:"tie"`
	Winners []string `json:"winners"`
	Votes   int      `json:"votes"`
}

// sortTallies 统一排序：票数降序，同票按名称升序
func sortTallies(tallies []CandidateTally) {
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Votes != tallies[j].Votes {
			return tallies[i].Votes > tallies[j].Votes
		}
		return tallies[i].Name < tallies[j].Name
	})
}

// liveTallyFromCache 从Redis计票镜像读取实时票数
func liveTallyFromCache() ([]CandidateTally, error) {
	members, err := database.RDB.ZRevRangeWithScores(database.Ctx, candidate.TallyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取计票镜像: %w", err)
	}
	if len(members) == 0 {
		return []CandidateTally{}, nil
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.Member.(string)
	}
	infoJSONs, err := database.RDB.HMGet(database.Ctx, candidate.InfoKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取候选人信息: %w", err)
	}

	tallies := make([]CandidateTally, 0, len(members))
	for i, m := range members {
		if infoJSONs[i] == nil {
			continue // 镜像暂时不一致，等待同步服务修复
		}
		var info candidate.CandidateInfo
		if err := json.Unmarshal([]byte(infoJSONs[i].(string)), &info); err != nil {
			continue
		}
		id, _ := strconv.ParseUint(ids[i], 10, 32)
		tallies = append(tallies, CandidateTally{
			ID:    uint(id),
			Name:  info.Name,
			Votes: int(m.Score),
		})
	}
	sortTallies(tallies)
	return tallies, nil
}

// liveTallyFromDB 直接从SQLite读取实时票数
func liveTallyFromDB() ([]CandidateTally, error) {
	candidates, err := candidate.ListCandidates()
	if err != nil {
		return nil, err
	}
	tallies := make([]CandidateTally, 0, len(candidates))
	for _, c := range candidates {
		tallies = append(tallies, CandidateTally{ID: c.ID, Name: c.Name, Votes: c.Votes})
	}
	sortTallies(tallies)
	return tallies, nil
}

// LiveTally 返回当前的实时计票，按票数降序排列。
// 任何时候都可以调用；优先读取Redis镜像，
// 镜像不可用或读取失败时退回SQLite权威数据。
func LiveTally() ([]CandidateTally, error) {
	if database.IsRedisHealthy() {
		tallies, err := liveTallyFromCache()
		if err == nil {
			return tallies, nil
		}
		fmt.Printf("警告: 计票镜像读取失败，退回SQLite: %v\n", err)
	}
	return liveTallyFromDB()
}

// Announce 公布选举结果。
// 只有在选举结束后才允许调用；扫描全部候选人，
// 跟踪当前的最高票数和并列集合：更高的票数重置集合，
// 相同的票数追加到集合。集合大小为1时是单一胜者，否则为平局。
func Announce() (*Outcome, error) {
	active, err := election.IsActive()
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrElectionStillActive
	}

	candidates, err := candidate.ListCandidates()
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	maxVotes := -1
	var tied []string
	for _, c := range candidates {
		switch {
		case c.Votes > maxVotes:
			maxVotes = c.Votes
			tied = []string{c.Name}
		case c.Votes == maxVotes:
			tied = append(tied, c.Name)
		}
	}
	sort.Strings(tied)

	return &Outcome{
		Tie:     len(tied) > 1,
		Winners: tied,
		Votes:   maxVotes,
	}, nil
}
