package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// Ensure FeatureStore implements store.FeatureStore
var _ store.FeatureStore = (*FeatureStore)(nil)

// FeatureStore implements store.FeatureStore using GORM
type FeatureStore struct {
	db *gorm.DB
}

// NewFeatureStore creates a new FeatureStore
func NewFeatureStore(db *gorm.DB) *FeatureStore {
	return &FeatureStore{db: db}
}

func (s *FeatureStore) motorQuery(q store.FeatureQuery) *gorm.DB {
	tx := s.db.Table(q.Table).
		Where("equipment_id = ? AND motor_number = ? AND plc = ?", q.EquipmentID, q.MotorNumber, q.PLC)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	return tx
}

// LatestFeature returns the most recent row matching q, ignoring its bounds.
func (s *FeatureStore) LatestFeature(q store.FeatureQuery) (store.FeatureRow, error) {
	var rows []map[string]interface{}
	if err := s.motorQuery(q).Order("acq_time desc").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return rows[0], nil
}

// FeatureRange returns the rows of q strictly inside its bounds ordered by
// acq_time ascending.
func (s *FeatureStore) FeatureRange(q store.FeatureQuery) ([]store.FeatureRow, error) {
	tx := s.motorQuery(q)
	if q.Start != nil {
		tx = tx.Where("acq_time > ?", *q.Start)
	}
	if q.End != nil {
		tx = tx.Where("acq_time < ?", *q.End)
	}
	var rows []map[string]interface{}
	if err := tx.Order("acq_time").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toFeatureRows(rows), nil
}

// FeatureAt returns the rows of a category table acquired exactly at acqTime.
func (s *FeatureStore) FeatureAt(category model.Category, equipmentID, motorNumber int, acqTime time.Time) ([]store.FeatureRow, error) {
	var rows []map[string]interface{}
	err := s.db.Table(category.FeatureTable()).
		Where("acq_time = ? AND equipment_id = ? AND motor_number = ?", acqTime, equipmentID, motorNumber).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toFeatureRows(rows), nil
}

func toFeatureRows(rows []map[string]interface{}) []store.FeatureRow {
	out := make([]store.FeatureRow, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// LatestTrigger returns the most recent trigger of a motor under plc.
func (s *FeatureStore) LatestTrigger(equipmentID, motorNumber, plc int) (*model.Trigger, error) {
	var rows []model.Trigger
	err := s.db.Where("equipment_id = ? AND motor_number = ? AND plc = ?", equipmentID, motorNumber, plc).
		Order("acq_time desc").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return &rows[0], nil
}

// TriggerRange returns the triggers of a motor strictly between start and
// end, most recent first.
func (s *FeatureStore) TriggerRange(equipmentID, motorNumber int, start, end time.Time) ([]model.Trigger, error) {
	var rows []model.Trigger
	err := s.db.Where("acq_time > ? AND acq_time < ?", start, end).
		Where("equipment_id = ? AND motor_number = ?", equipmentID, motorNumber).
		Order("acq_time desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
