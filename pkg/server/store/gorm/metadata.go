package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// Ensure MetadataStore implements store.MetadataStore
var _ store.MetadataStore = (*MetadataStore)(nil)

// MetadataStore implements store.MetadataStore using GORM
type MetadataStore struct {
	db *gorm.DB
}

// NewMetadataStore creates a new MetadataStore
func NewMetadataStore(db *gorm.DB) *MetadataStore {
	return &MetadataStore{db: db}
}

// Range returns the metadata of a motor strictly between start and end,
// most recent first.
func (s *MetadataStore) Range(equipmentID, motorNumber int, start, end time.Time) ([]model.Metadata, error) {
	var rows []model.Metadata
	err := s.db.Where("acq_time > ? AND acq_time < ?", start, end).
		Where("equipment_id = ? AND motor_number = ?", equipmentID, motorNumber).
		Order("acq_time desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MetadataStore) byKey(key store.MetadataKey) *gorm.DB {
	tx := s.db.Where("line_id = ? AND equipment_id = ? AND motor_number = ? AND phase = ?",
		key.LineID, key.EquipmentID, key.MotorNumber, key.Phase)
	if !key.AcqTime.IsZero() {
		tx = tx.Where("acq_time = ?", key.AcqTime)
	}
	return tx
}

// Find returns the metadata rows matching key.
func (s *MetadataStore) Find(key store.MetadataKey) ([]model.Metadata, error) {
	var rows []model.Metadata
	if err := s.byKey(key).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert adds a metadata row.
func (s *MetadataStore) Insert(m *model.Metadata) error {
	return translate(s.db.Create(m).Error)
}

// Delete removes the metadata rows matching key.
func (s *MetadataStore) Delete(key store.MetadataKey) (int64, error) {
	tx := s.byKey(key).Delete(&model.Metadata{})
	return tx.RowsAffected, tx.Error
}
