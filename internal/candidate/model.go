package candidate

import "gorm.io/gorm"

// Candidate 定义了数据库中候选人的数据结构
type Candidate struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	// ID 是数据库分配的代理主键，创建后不可变；
	// DeletedAt 使移除成为软删除：历史票数保留在表中，
	// 但默认查询（包括实时计票和投票）不再看到该候选人
	gorm.Model

	// Name 是候选人的唯一名称
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Manifesto 是候选人的竞选宣言，可以为空
	Manifesto string `json:"manifesto"`

	// Votes 是候选人的得票计数。
	// 它只会通过投票引擎加一，创建时为0，永不回退，也不允许直接设置
	Votes int `gorm:"not null;default:0" json:"votes"`
}
