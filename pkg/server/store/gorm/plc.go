package gorm

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// Ensure PLCStore implements store.PLCStore
var _ store.PLCStore = (*PLCStore)(nil)

// PLCLineID is the only line the PLC database tracks.
const PLCLineID = 1

// PLCStore implements store.PLCStore using GORM
type PLCStore struct {
	db *gorm.DB
}

// NewPLCStore creates a new PLCStore
func NewPLCStore(db *gorm.DB) *PLCStore {
	return &PLCStore{db: db}
}

// CurrentModel returns the model last logged for the CellState_Model
// mapping of an equipment. Missing mappings, missing logs and blank
// values all fall back to model.DefaultPLCModel.
func (s *PLCStore) CurrentModel(equipmentID int) (int, error) {
	var ids []int
	err := s.db.Model(&model.MemoryMapping{}).
		Where("line_id = ? AND equipment_id = ? AND name = ?", PLCLineID, equipmentID, model.CellStateModelName).
		Order("id").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return model.DefaultPLCModel, nil
	}

	var values []string
	err = s.db.Model(&model.PLCLog{}).
		Where("mm_id = ?", ids[0]).
		Order("id desc").
		Limit(1).
		Pluck("value", &values).Error
	if err != nil {
		return 0, err
	}
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return model.DefaultPLCModel, nil
	}
	return parseModel(values[0])
}

// parseModel reads a logged model value. Kepware reports numbers either
// as integers or as floats such as "5.0".
func parseModel(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Models returns every PLC model ordered by model number.
func (s *PLCStore) Models() ([]model.PLCModel, error) {
	var rows []model.PLCModel
	if err := s.db.Order("model").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ModelsOf returns the models of one equipment.
func (s *PLCStore) ModelsOf(equipmentID int) ([]model.PLCModel, error) {
	var rows []model.PLCModel
	err := s.db.Where("line_id = ? AND equipment_id = ?", PLCLineID, equipmentID).
		Order("model").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Model returns the model with the given number.
func (s *PLCStore) Model(number int) (*model.PLCModel, error) {
	var m model.PLCModel
	if err := s.db.Where("model = ?", number).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// ModelExists reports whether a model with the given number exists.
func (s *PLCStore) ModelExists(number int) (bool, error) {
	var n int64
	if err := s.db.Model(&model.PLCModel{}).Where("model = ?", number).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryMappings returns every memory mapping.
func (s *PLCStore) MemoryMappings() ([]model.MemoryMapping, error) {
	var rows []model.MemoryMapping
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// EquipmentMappings returns the memory mappings of one equipment.
func (s *PLCStore) EquipmentMappings(lineID, equipmentID int) ([]model.MemoryMapping, error) {
	var rows []model.MemoryMapping
	err := s.db.Where("line_id = ? AND equipment_id = ?", lineID, equipmentID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertLog records a value read from a memory mapping.
func (s *PLCStore) InsertLog(timestamp time.Time, mmID int, value string) error {
	return translate(s.db.Create(&model.PLCLog{Timestamp: timestamp, MMID: mmID, Value: value}).Error)
}

// CreateModel adds a PLC model.
func (s *PLCStore) CreateModel(m *model.PLCModel) error {
	return translate(s.db.Create(m).Error)
}

// UpdateModel updates the name and description of a model of an equipment.
func (s *PLCStore) UpdateModel(m *model.PLCModel) error {
	return s.db.Model(&model.PLCModel{}).
		Where("model = ? AND equipment_id = ?", m.Model, m.EquipmentID).
		Updates(map[string]interface{}{"name": m.Name, "description": m.Description}).Error
}

// DeleteModel removes the model with the given number.
func (s *PLCStore) DeleteModel(number int) error {
	return s.db.Where("model = ?", number).Delete(&model.PLCModel{}).Error
}
