package model

import "time"

// CellStateModelName is the memory mapping that reports the running PLC model.
const CellStateModelName = "CellState_Model"

// DefaultPLCModel is used when the PLC has not reported a model yet.
// Its parameters cannot be deleted.
const DefaultPLCModel = 3

// PLCModel is a production model of an equipment. Model is the value the
// PLC reports through CellState_Model and keys the per-PLC parameters.
type PLCModel struct {
	ID          int    `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	LineID      int    `gorm:"column:line_id;not null" json:"line_id" yaml:"line_id"`
	EquipmentID int    `gorm:"column:equipment_id;not null" json:"equipment_id" yaml:"equipment_id"`
	Model       int    `gorm:"column:model;not null" json:"model" yaml:"model"`
	Name        string `gorm:"column:name;not null" json:"name" yaml:"name"`
	Description string `gorm:"column:description;not null" json:"description" yaml:"description"`
}

func (PLCModel) TableName() string {
	return "model"
}

// MemoryMapping names a PLC memory address of an equipment.
type MemoryMapping struct {
	ID          int    `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	LineID      int    `gorm:"column:line_id;not null" json:"line_id" yaml:"line_id"`
	EquipmentID int    `gorm:"column:equipment_id;not null" json:"equipment_id" yaml:"equipment_id"`
	Name        string `gorm:"column:name;not null" json:"name" yaml:"name"`
}

func (MemoryMapping) TableName() string {
	return "memorymapping"
}

// PLCLog is a value read from a memory mapping, unique per (timestamp, mm_id).
type PLCLog struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Timestamp time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	MMID      int       `gorm:"column:mm_id;not null" json:"mm_id"`
	Value     string    `gorm:"column:value;not null" json:"value"`
}

func (PLCLog) TableName() string {
	return "log"
}
