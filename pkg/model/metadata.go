package model

import "time"

// Metadata describes one raw waveform stored in object storage.
type Metadata struct {
	LineID       int       `gorm:"column:line_id;primaryKey" json:"line_id"`
	EquipmentID  int       `gorm:"column:equipment_id;primaryKey" json:"equipment_id"`
	MotorNumber  int       `gorm:"column:motor_number;primaryKey" json:"motor_number"`
	Phase        string    `gorm:"column:phase;primaryKey;size:16" json:"phase"`
	AcqTime      time.Time `gorm:"column:acq_time;primaryKey" json:"acq_time"`
	FilePath     string    `gorm:"column:file_path;not null" json:"file_path"`
	SamplingRate int       `gorm:"column:sampling_rate;not null" json:"sampling_rate"`
	SampleSize   int       `gorm:"column:sample_size;not null" json:"sample_size"`
}

func (Metadata) TableName() string {
	return "metadata"
}
