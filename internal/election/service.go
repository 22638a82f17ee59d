package election

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// ActiveKey is the settings key holding the single global election flag.
	ActiveKey = "electionActive"
)

// Election lifecycle errors. Start/End deliberately reject calls that match
// the current state instead of accepting them silently, so operator mistakes
// surface immediately.
var (
	ErrAlreadyActive = errors.New("选举已经处于进行状态")
	ErrNotActive     = errors.New("选举并未处于进行状态")
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the settings table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var setting Setting
	err := db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// SetValue creates or updates a value for a given key.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	// It will update the 'value' column if a record with the same 'key' already exists.
	setting := Setting{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

// --- Election Flag Helpers ---

// IsActiveTx reads the election flag through the given transaction handle.
// The vote engine calls this inside its own transaction so that the
// active-check participates in the same atomic unit as the tally write.
func IsActiveTx(db *gorm.DB) (bool, error) {
	valueStr, err := GetValue(db, ActiveKey)
	if err != nil {
		return false, fmt.Errorf("无法读取选举状态: %w", err)
	}
	if valueStr == "" {
		return false, nil
	}
	active, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("无法解析设置 '%s' 的值: %w", ActiveKey, err)
	}
	return active, nil
}

// IsActive 返回当前选举是否处于进行状态。
func IsActive() (bool, error) {
	return IsActiveTx(database.DB)
}

// Start 开启投票窗口。
// 在同一个事务中重读状态，重复开启会返回ErrAlreadyActive且不改变任何状态。
func Start() error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		active, err := IsActiveTx(tx)
		if err != nil {
			return err
		}
		if active {
			return ErrAlreadyActive
		}
		if err := SetValue(tx, ActiveKey, "true"); err != nil {
			return fmt.Errorf("无法更新选举状态: %w", err)
		}
		return nil
	})
}

// End 关闭投票窗口。
// 重复关闭会返回ErrNotActive且不改变任何状态。
func End() error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		active, err := IsActiveTx(tx)
		if err != nil {
			return err
		}
		if !active {
			return ErrNotActive
		}
		if err := SetValue(tx, ActiveKey, "false"); err != nil {
			return fmt.Errorf("无法更新选举状态: %w", err)
		}
		return nil
	})
}
