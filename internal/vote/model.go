package vote

import "time"

// VotedUser 定义了已投票选民集合的持久化模型。
// 这张表是“该选民是否已投票”的唯一事实来源：
// 成员只增不减，在选举周期内永久保留（不支持撤票）。
// 记录通过用户名引用选民，但不是从属关系——
// 选民之后被移除时，这里的记录作为孤儿保留，不算错误。
type VotedUser struct {
	// Username 是主键。主键冲突即意味着重复投票，
	// 这也是并发投票时最终的串行化保障
	Username string `gorm:"primarykey;type:varchar(64)"`

	// CreatedAt 由GORM自动填写
	CreatedAt time.Time
}
