package candidate

import (
	"errors"
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"gorm.io/gorm"
)

// 候选人管理相关的错误
var (
	// ErrCandidateNotFound 表示候选人ID无法解析（不存在或已被移除）
	ErrCandidateNotFound = errors.New("候选人不存在")
	// ErrNameTaken 表示候选人名称已被占用
	ErrNameTaken = errors.New("候选人名称已存在")
)

// CreateCandidate 创建一个新的候选人，初始票数为0。
func CreateCandidate(name, manifesto string) (*Candidate, error) {
	newCandidate := Candidate{
		Name:      name,
		Manifesto: manifesto,
		Votes:     0,
	}
	if err := database.DB.Create(&newCandidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("无法创建候选人 %s: %w", name, err)
	}

	// 数据库提交成功后，尽力同步计票镜像
	RefreshCacheEntry(&newCandidate)
	return &newCandidate, nil
}

// UpdateCandidate 修改候选人的名称和宣言。
// 票数不属于可修改字段，只能由投票引擎变更。
func UpdateCandidate(id uint, name, manifesto string) error {
	var updated Candidate
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var c Candidate
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCandidateNotFound
			}
			return fmt.Errorf("无法查询候选人 %d: %w", id, err)
		}
		if err := tx.Model(&c).Updates(map[string]interface{}{
			"name":      name,
			"manifesto": manifesto,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrNameTaken
			}
			return fmt.Errorf("无法更新候选人 %d: %w", id, err)
		}
		c.Name = name
		c.Manifesto = manifesto
		updated = c
		return nil
	})
	if err != nil {
		return err
	}

	RefreshCacheEntry(&updated)
	return nil
}

// DeleteCandidate 移除一个候选人（软删除）。
// 已累计的票数保留在表中作为历史数据，但该候选人从此
// 不再出现在实时计票里，针对其ID的投票会得到“候选人不存在”。
func DeleteCandidate(id uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var c Candidate
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCandidateNotFound
			}
			return fmt.Errorf("无法查询候选人 %d: %w", id, err)
		}
		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("无法删除候选人 %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	RemoveCacheEntry(id)
	return nil
}

// GetCandidate 按ID读取一条候选人记录。
func GetCandidate(id uint) (*Candidate, error) {
	var c Candidate
	if err := database.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("无法查询候选人 %d: %w", id, err)
	}
	return &c, nil
}

// ListCandidates 返回所有未被移除的候选人，按票数降序、名称升序排列。
func ListCandidates() ([]Candidate, error) {
	var candidates []Candidate
	if err := database.DB.Order("votes desc, name asc").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("无法读取候选人列表: %w", err)
	}
	return candidates, nil
}
