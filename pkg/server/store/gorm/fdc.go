package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// Ensure FDCStore implements store.FDCStore
var _ store.FDCStore = (*FDCStore)(nil)

// FDCStore implements store.FDCStore using GORM
type FDCStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFDCStore creates a new FDCStore. now stamps updated_time.
func NewFDCStore(db *gorm.DB, now func() time.Time) *FDCStore {
	if now == nil {
		now = time.Now
	}
	return &FDCStore{db: db, now: now}
}

// Config returns the broker configuration.
func (s *FDCStore) Config() (*model.FDCConfig, error) {
	var c model.FDCConfig
	if err := s.db.Where("id = ?", model.FDCConfigID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// UpdateConfig overwrites the configuration row and stamps its update time.
// Returns store.ErrNotFound when the row has not been seeded.
func (s *FDCStore) UpdateConfig(c *model.FDCConfig) error {
	c.ID = model.FDCConfigID
	c.UpdatedTime = s.now()
	columns, err := columnsExcept(s.db, c, "id")
	if err != nil {
		return err
	}
	tx := s.db.Model(&model.FDCConfig{}).
		Where("id = ?", model.FDCConfigID).
		Select(columns).
		Updates(c)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
