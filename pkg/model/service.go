package model

import "time"

// Line is a production line.
type Line struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	Category string `gorm:"column:category;not null" json:"category" yaml:"category"`
	Name     string `gorm:"column:name;not null" json:"name" yaml:"name"`
}

func (Line) TableName() string {
	return "line"
}

// Equipment is a lamination machine on a line. Its name starts with the
// line number, for example "13-1".
type Equipment struct {
	ID     int    `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	LineID int    `gorm:"column:line_id;not null" json:"line_id" yaml:"line_id"`
	Name   string `gorm:"column:name;not null" json:"name" yaml:"name"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// Motor is a servo or induction motor of an equipment, unique per
// (equipment_id, number).
type Motor struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	EquipmentID  int       `gorm:"column:equipment_id;not null" json:"equipment_id" yaml:"equipment_id"`
	Number       int       `gorm:"column:number;not null" json:"number" yaml:"number"`
	UpdatedTime  time.Time `gorm:"column:updated_time;autoUpdateTime" json:"updated_time" yaml:"updated_time"`
	Name         string    `gorm:"column:name;not null" json:"name" yaml:"name"`
	Category     Category  `gorm:"column:category;type:varchar" json:"category" yaml:"category"`
	RatedCurrent float64   `gorm:"column:rated_current" json:"rated_current" yaml:"rated_current"`
	Pole         *int      `gorm:"column:pole" json:"pole" yaml:"pole"`
	GearRatio    *float64  `gorm:"column:gear_ratio" json:"gear_ratio" yaml:"gear_ratio"`
	MaxCurrent   *float64  `gorm:"column:max_current" json:"max_current" yaml:"max_current"`
}

func (Motor) TableName() string {
	return "motor"
}

// ParameterKey identifies the parameter rows of one motor under one PLC model.
type ParameterKey struct {
	EquipmentID int `gorm:"column:equipment_id" json:"equipment_id" yaml:"equipment_id"`
	MotorNumber int `gorm:"column:motor_number" json:"motor_number" yaml:"motor_number"`
	PLC         int `gorm:"column:plc" json:"plc" yaml:"plc"`
}

// MotorBearing holds the motor's own bearing geometry and supply frequency.
type MotorBearing struct {
	ID                       int       `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	EquipmentID              int       `gorm:"column:equipment_id;not null" json:"equipment_id" yaml:"equipment_id"`
	MotorNumber              int       `gorm:"column:motor_number;not null" json:"motor_number" yaml:"motor_number"`
	PLC                      int       `gorm:"column:plc;not null" json:"plc" yaml:"plc"`
	UpdatedTime              time.Time `gorm:"column:updated_time;autoUpdateTime" json:"updated_time" yaml:"updated_time"`
	SupplyFreq               float64   `gorm:"column:supply_freq;not null" json:"supply_freq" yaml:"supply_freq"`
	MovingMedianSampleNumber int       `gorm:"column:moving_median_sample_number;not null" json:"moving_median_sample_number" yaml:"moving_median_sample_number"`
	BallDiameter             *float64  `gorm:"column:motor_bearing_ball_diameter" json:"motor_bearing_ball_diameter" yaml:"motor_bearing_ball_diameter"`
	PitchDiameter            *float64  `gorm:"column:motor_bearing_pitch_diameter" json:"motor_bearing_pitch_diameter" yaml:"motor_bearing_pitch_diameter"`
	BallNumber               *int      `gorm:"column:motor_bearing_ball_number" json:"motor_bearing_ball_number" yaml:"motor_bearing_ball_number"`
}

func (MotorBearing) TableName() string {
	return "motor_bearing"
}

// ExternalBearing is the main bearing of the driven part.
type ExternalBearing struct {
	ID                       int       `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	EquipmentID              int       `gorm:"column:equipment_id;not null" json:"equipment_id" yaml:"equipment_id"`
	MotorNumber              int       `gorm:"column:motor_number;not null" json:"motor_number" yaml:"motor_number"`
	PLC                      int       `gorm:"column:plc;not null" json:"plc" yaml:"plc"`
	UpdatedTime              time.Time `gorm:"column:updated_time;autoUpdateTime" json:"updated_time" yaml:"updated_time"`
	BearingNumber            int       `gorm:"column:bearing_number;not null" json:"bearing_number" yaml:"bearing_number"`
	MovingMedianSampleNumber int       `gorm:"column:moving_median_sample_number;not null" json:"moving_median_sample_number" yaml:"moving_median_sample_number"`
	BallDiameter             *float64  `gorm:"column:external_bearing_ball_diameter" json:"external_bearing_ball_diameter" yaml:"external_bearing_ball_diameter"`
	PitchDiameter            *float64  `gorm:"column:external_bearing_pitch_diameter" json:"external_bearing_pitch_diameter" yaml:"external_bearing_pitch_diameter"`
	BallNumber               *int      `gorm:"column:external_bearing_ball_number" json:"external_bearing_ball_number" yaml:"external_bearing_ball_number"`
	FeatureWarning           float64   `gorm:"column:external_bearing_feature_warning;not null" json:"external_bearing_feature_warning" yaml:"external_bearing_feature_warning"`
	FeatureCaution           float64   `gorm:"column:external_bearing_feature_caution;not null" json:"external_bearing_feature_caution" yaml:"external_bearing_feature_caution"`
}

func (ExternalBearing) TableName() string {
	return "external_bearing"
}

// TensionBearing is the tension roller bearing of u3t motors.
type TensionBearing struct {
	ID                       int       `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	EquipmentID              int       `gorm:"column:equipment_id;not null" json:"equipment_id" yaml:"equipment_id"`
	MotorNumber              int       `gorm:"column:motor_number;not null" json:"motor_number" yaml:"motor_number"`
	PLC                      int       `gorm:"column:plc;not null" json:"plc" yaml:"plc"`
	UpdatedTime              time.Time `gorm:"column:updated_time;autoUpdateTime" json:"updated_time" yaml:"updated_time"`
	BearingNumber            int       `gorm:"column:bearing_number;not null" json:"bearing_number" yaml:"bearing_number"`
	MovingMedianSampleNumber int       `gorm:"column:moving_median_sample_number;not null" json:"moving_median_sample_number" yaml:"moving_median_sample_number"`
	BallDiameter             *float64  `gorm:"column:tension_bearing_ball_diameter" json:"tension_bearing_ball_diameter" yaml:"tension_bearing_ball_diameter"`
	PitchDiameter            *float64  `gorm:"column:tension_bearing_pitch_diameter" json:"tension_bearing_pitch_diameter" yaml:"tension_bearing_pitch_diameter"`
	BallNumber               *int      `gorm:"column:tension_bearing_ball_number" json:"tension_bearing_ball_number" yaml:"tension_bearing_ball_number"`
	FeatureWarning           float64   `gorm:"column:tension_bearing_feature_warning;not null" json:"tension_bearing_feature_warning" yaml:"tension_bearing_feature_warning"`
	FeatureCaution           float64   `gorm:"column:tension_bearing_feature_caution;not null" json:"tension_bearing_feature_caution" yaml:"tension_bearing_feature_caution"`
}

func (TensionBearing) TableName() string {
	return "tension_bearing"
}

// Variable holds the parameters of variable speed motors. Template is the
// reference current of the three phases, see DecodeTemplate.
type Variable struct {
	ID                       int       `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	EquipmentID              int       `gorm:"column:equipment_id;not null" json:"equipment_id" yaml:"equipment_id"`
	MotorNumber              int       `gorm:"column:motor_number;not null" json:"motor_number" yaml:"motor_number"`
	PLC                      int       `gorm:"column:plc;not null" json:"plc" yaml:"plc"`
	UpdatedTime              time.Time `gorm:"column:updated_time;autoUpdateTime" json:"updated_time" yaml:"updated_time"`
	MovingMedianSampleNumber int       `gorm:"column:moving_median_sample_number;not null" json:"moving_median_sample_number" yaml:"moving_median_sample_number"`
	Template                 []byte    `gorm:"column:template" json:"-" yaml:"-"`
}

func (Variable) TableName() string {
	return "variable"
}

// UniformSpeedThreshold holds the diagnosis thresholds of uniform speed motors.
type UniformSpeedThreshold struct {
	EquipmentID                int       `gorm:"column:equipment_id;primaryKey" json:"equipment_id" yaml:"equipment_id"`
	MotorNumber                int       `gorm:"column:motor_number;primaryKey" json:"motor_number" yaml:"motor_number"`
	PLC                        int       `gorm:"column:plc;primaryKey" json:"plc" yaml:"plc"`
	UpdatedTime                time.Time `gorm:"column:updated_time;autoUpdateTime" json:"updated_time" yaml:"updated_time"`
	StatorFeatureWarning       float64   `gorm:"column:stator_feature_warning;not null" json:"stator_feature_warning" yaml:"stator_feature_warning"`
	StatorFeatureCaution       float64   `gorm:"column:stator_feature_caution;not null" json:"stator_feature_caution" yaml:"stator_feature_caution"`
	MotorBearingFeatureWarning float64   `gorm:"column:motor_bearing_feature_warning;not null" json:"motor_bearing_feature_warning" yaml:"motor_bearing_feature_warning"`
	MotorBearingFeatureCaution float64   `gorm:"column:motor_bearing_feature_caution;not null" json:"motor_bearing_feature_caution" yaml:"motor_bearing_feature_caution"`
	GearShaftFeatureWarning    float64   `gorm:"column:gear_shaft_feature_warning;not null" json:"gear_shaft_feature_warning" yaml:"gear_shaft_feature_warning"`
	GearShaftFeatureCaution    float64   `gorm:"column:gear_shaft_feature_caution;not null" json:"gear_shaft_feature_caution" yaml:"gear_shaft_feature_caution"`
	CouplingFeatureWarning     float64   `gorm:"column:coupling_feature_warning;not null" json:"coupling_feature_warning" yaml:"coupling_feature_warning"`
	CouplingFeatureCaution     float64   `gorm:"column:coupling_feature_caution;not null" json:"coupling_feature_caution" yaml:"coupling_feature_caution"`
	BeltFeatureWarning         float64   `gorm:"column:belt_feature_warning;not null" json:"belt_feature_warning" yaml:"belt_feature_warning"`
	BeltFeatureCaution         float64   `gorm:"column:belt_feature_caution;not null" json:"belt_feature_caution" yaml:"belt_feature_caution"`
}

func (UniformSpeedThreshold) TableName() string {
	return "uniform_speed_threshold"
}

// VariableSpeedThreshold holds the diagnosis thresholds of variable speed motors.
type VariableSpeedThreshold struct {
	EquipmentID                 int       `gorm:"column:equipment_id;primaryKey" json:"equipment_id" yaml:"equipment_id"`
	MotorNumber                 int       `gorm:"column:motor_number;primaryKey" json:"motor_number" yaml:"motor_number"`
	PLC                         int       `gorm:"column:plc;primaryKey" json:"plc" yaml:"plc"`
	UpdatedTime                 time.Time `gorm:"column:updated_time;autoUpdateTime" json:"updated_time" yaml:"updated_time"`
	PhaseNumber                 int       `gorm:"column:phase_number;not null" json:"phase_number" yaml:"phase_number"`
	CurrentCorrPVMLowerWarning  float64   `gorm:"column:current_corr_pvm_lower_warning;not null" json:"current_corr_pvm_lower_warning" yaml:"current_corr_pvm_lower_warning"`
	CurrentCorrPVMLowerCaution  float64   `gorm:"column:current_corr_pvm_lower_caution;not null" json:"current_corr_pvm_lower_caution" yaml:"current_corr_pvm_lower_caution"`
	CurrentNoiseRMSUpperWarning float64   `gorm:"column:current_noise_rms_upper_warning;not null" json:"current_noise_rms_upper_warning" yaml:"current_noise_rms_upper_warning"`
	CurrentNoiseRMSUpperCaution float64   `gorm:"column:current_noise_rms_upper_caution;not null" json:"current_noise_rms_upper_caution" yaml:"current_noise_rms_upper_caution"`
	CurrentNoiseRMSLowerWarning float64   `gorm:"column:current_noise_rms_lower_warning;not null" json:"current_noise_rms_lower_warning" yaml:"current_noise_rms_lower_warning"`
	CurrentNoiseRMSLowerCaution float64   `gorm:"column:current_noise_rms_lower_caution;not null" json:"current_noise_rms_lower_caution" yaml:"current_noise_rms_lower_caution"`
}

func (VariableSpeedThreshold) TableName() string {
	return "variable_speed_threshold"
}
