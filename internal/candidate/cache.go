package candidate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// --- Redis-specific Definitions ---
// SQLite是唯一的权威存储；Redis中的镜像只服务实时计票读取，
// 任何时候都可以从SQLite完整重建。

const (
	// InfoKey 是一个Redis Hash，存储所有候选人的静态信息
	InfoKey = "candidate:info"
	// TallyKey 是一个Redis Sorted Set，按实时票数对候选人排序
	TallyKey = "candidate:tally"
)

// CandidateInfo 定义了在Redis candidate:info Hash中存储的候选人静态数据
type CandidateInfo struct {
	Name      string `json:"name"`
	Manifesto string `json:"manifesto"`
}

// cacheID 把数据库主键转换为Redis成员字符串
func cacheID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// WarmupCache 从SQLite加载全部候选人数据，重建Redis中的计票镜像。
// 注意：此函数不含锁，调用方需要确保在安全的时机（如单线程启动）调用。
func WarmupCache() error {
	if !database.IsRedisHealthy() {
		return nil // 降级模式：跳过镜像重建
	}

	var candidatesInDB []Candidate
	if err := database.DB.Find(&candidatesInDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取候选人数据: %w", err)
	}

	pipe := database.RDB.Pipeline()
	// 先清空旧的镜像，确保数据一致性
	pipe.Del(database.Ctx, InfoKey, TallyKey)

	for _, c := range candidatesInDB {
		info := CandidateInfo{Name: c.Name, Manifesto: c.Manifesto}
		infoJSON, _ := json.Marshal(info)
		pipe.HSet(database.Ctx, InfoKey, cacheID(c.ID), infoJSON)
		pipe.ZAdd(database.Ctx, TallyKey, redis.Z{
			Score:  float64(c.Votes),
			Member: cacheID(c.ID),
		})
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热候选人数据到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 条候选人数据到Redis。\n", len(candidatesInDB))
	return nil
}

// RefreshCacheEntry 在候选人创建或修改后，尽力更新镜像中的对应条目。
// 失败只打印警告：镜像会被后台同步服务或下一次预热修复。
func RefreshCacheEntry(c *Candidate) {
	if !database.IsRedisHealthy() {
		return
	}

	info := CandidateInfo{Name: c.Name, Manifesto: c.Manifesto}
	infoJSON, _ := json.Marshal(info)

	pipe := database.RDB.Pipeline()
	pipe.HSet(database.Ctx, InfoKey, cacheID(c.ID), infoJSON)
	pipe.ZAdd(database.Ctx, TallyKey, redis.Z{Score: float64(c.Votes), Member: cacheID(c.ID)})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("警告: 无法更新候选人 %d 的计票镜像: %v\n", c.ID, err)
	}
}

// RemoveCacheEntry 在候选人被移除后，尽力从镜像中删除对应条目。
func RemoveCacheEntry(id uint) {
	if !database.IsRedisHealthy() {
		return
	}

	pipe := database.RDB.Pipeline()
	pipe.HDel(database.Ctx, InfoKey, cacheID(id))
	pipe.ZRem(database.Ctx, TallyKey, cacheID(id))
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("警告: 无法从计票镜像中移除候选人 %d: %v\n", id, err)
	}
}

// IncrementCachedTally 在一票成功落库后，尽力将镜像中的票数加一。
func IncrementCachedTally(id uint) {
	if !database.IsRedisHealthy() {
		return
	}

	if err := database.RDB.ZIncrBy(database.Ctx, TallyKey, 1, cacheID(id)).Err(); err != nil {
		fmt.Printf("警告: 无法更新候选人 %d 的镜像票数: %v\n", id, err)
	}
}
