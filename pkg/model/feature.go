package model

import "time"

// Feature tables. Rows are keyed by (equipment_id, motor_number, acq_time, plc)
// and are written by the diagnosis pipeline, so the server reads them as
// column maps rather than through fixed structs.
const (
	TableUniformSpeedExternalFeature = "uniform_speed_external_feature"
	TableUniformSpeedTensionFeature  = "uniform_speed_tension_feature"
	TableVariableSpeedPhase1Feature  = "variable_speed_phase1_feature"
	TableVariableSpeedPhase3Feature  = "variable_speed_phase3_feature"
)

// Trigger records one acquisition. Status and PLCStatus are rendered as
// lges.dashboard.status<N> labels.
type Trigger struct {
	EquipmentID      int       `gorm:"column:equipment_id;primaryKey" json:"equipment_id"`
	MotorNumber      int       `gorm:"column:motor_number;primaryKey" json:"motor_number"`
	AcqTime          time.Time `gorm:"column:acq_time;primaryKey" json:"acq_time"`
	PLC              int       `gorm:"column:plc;primaryKey" json:"plc"`
	Status           int       `gorm:"column:status;not null" json:"status"`
	PLCStatus        int       `gorm:"column:plc_status;not null" json:"plc_status"`
	SupplyFreqByData float64   `gorm:"column:supply_freq_by_data;not null" json:"supply_freq_by_data"`
	RMSU             float64   `gorm:"column:rms_u;not null" json:"rms_u"`
}

func (Trigger) TableName() string {
	return "trigger"
}
