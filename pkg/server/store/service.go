package store

import (
	"time"

	"github.com/onepredict/lges-query-server/pkg/model"
)

// MotorEquipment is a motor together with the equipment it is mounted on
type MotorEquipment struct {
	LineID        int            `gorm:"column:line_id" json:"line_id"`
	EquipmentName string         `gorm:"column:equipment_name" json:"equipment_name"`
	EquipmentID   int            `gorm:"column:equipment_id" json:"equipment_id"`
	Number        int            `gorm:"column:number" json:"number"`
	Name          string         `gorm:"column:name" json:"name"`
	Category      model.Category `gorm:"column:category" json:"category"`
}

// LineEquipment is an equipment of a line
type LineEquipment struct {
	Category      string `gorm:"column:category" json:"category"`
	LineName      string `gorm:"column:line_name" json:"line_name"`
	EquipmentID   int    `gorm:"column:equipment_id" json:"equipment_id"`
	EquipmentName string `gorm:"column:equipment_name" json:"equipment_name"`
}

// Fixed diagnosis constants reported with every motor setting.
const (
	ThresholdMinimumCurrent = 0.1
	TestSignalNum           = 10
)

// UniformSetting is the full parameter set of a u3e or u3t motor under
// one PLC model. Tension fields are nil for u3e motors.
type UniformSetting struct {
	LineID        int            `gorm:"column:line_id" json:"line_id"`
	EquipmentID   int            `gorm:"column:equipment_id" json:"equipment_id"`
	EquipmentName string         `gorm:"column:equipment_name" json:"equipment_name"`
	Number        int            `gorm:"column:number" json:"number"`
	RatedCurrent  float64        `gorm:"column:rated_current" json:"rated_current"`
	Pole          *int           `gorm:"column:pole" json:"pole"`
	SupplyFreq    float64        `gorm:"column:supply_freq" json:"supply_freq"`
	Name          string         `gorm:"column:name" json:"name"`
	Category      model.Category `gorm:"column:category" json:"category"`
	GearRatio     *float64       `gorm:"column:gear_ratio" json:"gear_ratio"`
	MaxCurrent    *float64       `gorm:"column:max_current" json:"max_current"`
	PLC           int            `gorm:"column:plc" json:"plc"`

	ThresholdMinimumCurrent float64 `gorm:"-" json:"threshold_minimum_current"`
	TestSignalNum           int     `gorm:"-" json:"test_signal_num"`

	StatorFeatureWarning          float64  `gorm:"column:stator_feature_warning" json:"stator_feature_warning"`
	StatorFeatureCaution          float64  `gorm:"column:stator_feature_caution" json:"stator_feature_caution"`
	MotorBearingFeatureWarning    float64  `gorm:"column:motor_bearing_feature_warning" json:"motor_bearing_feature_warning"`
	MotorBearingFeatureCaution    float64  `gorm:"column:motor_bearing_feature_caution" json:"motor_bearing_feature_caution"`
	GearShaftFeatureWarning       float64  `gorm:"column:gear_shaft_feature_warning" json:"gear_shaft_feature_warning"`
	GearShaftFeatureCaution       float64  `gorm:"column:gear_shaft_feature_caution" json:"gear_shaft_feature_caution"`
	ExternalBearingFeatureWarning float64  `gorm:"column:external_bearing_feature_warning" json:"external_bearing_feature_warning"`
	ExternalBearingFeatureCaution float64  `gorm:"column:external_bearing_feature_caution" json:"external_bearing_feature_caution"`
	CouplingFeatureWarning        float64  `gorm:"column:coupling_feature_warning" json:"coupling_feature_warning"`
	CouplingFeatureCaution        float64  `gorm:"column:coupling_feature_caution" json:"coupling_feature_caution"`
	BeltFeatureWarning            float64  `gorm:"column:belt_feature_warning" json:"belt_feature_warning"`
	BeltFeatureCaution            float64  `gorm:"column:belt_feature_caution" json:"belt_feature_caution"`
	TensionBearingFeatureWarning  *float64 `gorm:"column:tension_bearing_feature_warning" json:"tension_bearing_feature_warning"`
	TensionBearingFeatureCaution  *float64 `gorm:"column:tension_bearing_feature_caution" json:"tension_bearing_feature_caution"`

	MotorBearingMovingMedianSampleNumber    int  `gorm:"column:motor_bearing_moving_median_sample_number" json:"motor_bearing_moving_median_sample_number"`
	ExternalBearingMovingMedianSampleNumber int  `gorm:"column:external_bearing_moving_median_sample_number" json:"external_bearing_moving_median_sample_number"`
	TensionBearingMovingMedianSampleNumber  *int `gorm:"column:tension_bearing_moving_median_sample_number" json:"tension_bearing_moving_median_sample_number"`

	MotorBearingBallDiameter     *float64 `gorm:"column:motor_bearing_ball_diameter" json:"motor_bearing_ball_diameter"`
	MotorBearingPitchDiameter    *float64 `gorm:"column:motor_bearing_pitch_diameter" json:"motor_bearing_pitch_diameter"`
	MotorBearingBallNumber       *int     `gorm:"column:motor_bearing_ball_number" json:"motor_bearing_ball_number"`
	ExternalBearingBallDiameter  *float64 `gorm:"column:external_bearing_ball_diameter" json:"external_bearing_ball_diameter"`
	ExternalBearingPitchDiameter *float64 `gorm:"column:external_bearing_pitch_diameter" json:"external_bearing_pitch_diameter"`
	ExternalBearingBallNumber    *int     `gorm:"column:external_bearing_ball_number" json:"external_bearing_ball_number"`
	TensionBearingBallDiameter   *float64 `gorm:"column:tension_bearing_ball_diameter" json:"tension_bearing_ball_diameter"`
	TensionBearingPitchDiameter  *float64 `gorm:"column:tension_bearing_pitch_diameter" json:"tension_bearing_pitch_diameter"`
	TensionBearingBallNumber     *int     `gorm:"column:tension_bearing_ball_number" json:"tension_bearing_ball_number"`
	ExternalBearingNumber        *int     `gorm:"column:external_bearing_number" json:"external_bearing_number"`
	TensionBearingNumber         *int     `gorm:"column:tension_bearing_number" json:"tension_bearing_number"`
}

// Thresholds returns the warning and caution levels keyed by column.
func (s *UniformSetting) Thresholds() map[string]interface{} {
	t := map[string]interface{}{
		"stator_feature_warning":           s.StatorFeatureWarning,
		"stator_feature_caution":           s.StatorFeatureCaution,
		"motor_bearing_feature_warning":    s.MotorBearingFeatureWarning,
		"motor_bearing_feature_caution":    s.MotorBearingFeatureCaution,
		"gear_shaft_feature_warning":       s.GearShaftFeatureWarning,
		"gear_shaft_feature_caution":       s.GearShaftFeatureCaution,
		"external_bearing_feature_warning": s.ExternalBearingFeatureWarning,
		"external_bearing_feature_caution": s.ExternalBearingFeatureCaution,
		"coupling_feature_warning":         s.CouplingFeatureWarning,
		"coupling_feature_caution":         s.CouplingFeatureCaution,
		"belt_feature_warning":             s.BeltFeatureWarning,
		"belt_feature_caution":             s.BeltFeatureCaution,
	}
	if s.TensionBearingFeatureWarning != nil {
		t["tension_bearing_feature_warning"] = *s.TensionBearingFeatureWarning
	}
	if s.TensionBearingFeatureCaution != nil {
		t["tension_bearing_feature_caution"] = *s.TensionBearingFeatureCaution
	}
	return t
}

// VariableSetting is the full parameter set of a v3 motor under one PLC
// model. The template columns are decoded from the variable row.
type VariableSetting struct {
	LineID        int            `gorm:"column:line_id" json:"line_id"`
	EquipmentID   int            `gorm:"column:equipment_id" json:"equipment_id"`
	EquipmentName string         `gorm:"column:equipment_name" json:"equipment_name"`
	Number        int            `gorm:"column:number" json:"number"`
	RatedCurrent  float64        `gorm:"column:rated_current" json:"rated_current"`
	Pole          *int           `gorm:"column:pole" json:"pole"`
	Name          string         `gorm:"column:name" json:"name"`
	Category      model.Category `gorm:"column:category" json:"category"`
	GearRatio     *float64       `gorm:"column:gear_ratio" json:"gear_ratio"`
	MaxCurrent    *float64       `gorm:"column:max_current" json:"max_current"`
	PLC           int            `gorm:"column:plc" json:"plc"`

	CurrentCorrPVMLowerWarning  float64 `gorm:"column:current_corr_pvm_lower_warning" json:"current_corr_pvm_lower_warning"`
	CurrentCorrPVMLowerCaution  float64 `gorm:"column:current_corr_pvm_lower_caution" json:"current_corr_pvm_lower_caution"`
	CurrentNoiseRMSUpperWarning float64 `gorm:"column:current_noise_rms_upper_warning" json:"current_noise_rms_upper_warning"`
	CurrentNoiseRMSUpperCaution float64 `gorm:"column:current_noise_rms_upper_caution" json:"current_noise_rms_upper_caution"`
	CurrentNoiseRMSLowerWarning float64 `gorm:"column:current_noise_rms_lower_warning" json:"current_noise_rms_lower_warning"`
	CurrentNoiseRMSLowerCaution float64 `gorm:"column:current_noise_rms_lower_caution" json:"current_noise_rms_lower_caution"`

	MovingMedianSampleNumber int     `gorm:"column:moving_median_sample_number" json:"moving_median_sample_number"`
	ThresholdMinimumCurrent  float64 `gorm:"-" json:"threshold_minimum_current"`

	Template  []byte    `gorm:"column:template" json:"-"`
	TemplateU []float64 `gorm:"-" json:"template_u"`
	TemplateV []float64 `gorm:"-" json:"template_v"`
	TemplateW []float64 `gorm:"-" json:"template_w"`
}

// Thresholds returns the warning and caution levels keyed by column.
func (s *VariableSetting) Thresholds() map[string]interface{} {
	return map[string]interface{}{
		"current_corr_pvm_lower_warning":  s.CurrentCorrPVMLowerWarning,
		"current_corr_pvm_lower_caution":  s.CurrentCorrPVMLowerCaution,
		"current_noise_rms_upper_warning": s.CurrentNoiseRMSUpperWarning,
		"current_noise_rms_upper_caution": s.CurrentNoiseRMSUpperCaution,
		"current_noise_rms_lower_warning": s.CurrentNoiseRMSLowerWarning,
		"current_noise_rms_lower_caution": s.CurrentNoiseRMSLowerCaution,
	}
}

// ServiceStore abstracts the service database: lines, equipment, motors
// and their per-PLC parameters
type ServiceStore interface {
	// ListEquipment returns every equipment row ordered by id.
	ListEquipment() ([]model.Equipment, error)

	// LineEquipment returns the equipment of the line with the given name.
	LineEquipment(lineName string) ([]LineEquipment, error)

	// Equipment returns an equipment by id.
	// Returns ErrNotFound if it doesn't exist.
	Equipment(id int) (*model.Equipment, error)

	// EquipmentByName returns an equipment by name.
	// Returns ErrNotFound if it doesn't exist.
	EquipmentByName(name string) (*model.Equipment, error)

	// MotorEquipment returns every motor ordered by equipment and number.
	MotorEquipment() ([]MotorEquipment, error)

	// MotorsInEquipment returns the motors of one equipment ordered by number.
	MotorsInEquipment(equipmentID int) ([]MotorEquipment, error)

	// Motor returns one motor with its equipment.
	// Returns ErrNotFound if it doesn't exist.
	Motor(equipmentID, number int) (*MotorEquipment, error)

	// UniformSettings returns the settings of every u3e and u3t motor under plc.
	UniformSettings(plc int) ([]UniformSetting, error)

	// VariableSettings returns the settings of every v3 motor under plc.
	VariableSettings(plc int) ([]VariableSetting, error)

	// UniformSetting returns the settings of one uniform speed motor.
	// Returns ErrNotFound if no parameters exist for the key.
	UniformSetting(key model.ParameterKey) (*UniformSetting, error)

	// VariableSetting returns the settings of one variable speed motor.
	// Returns ErrNotFound if no parameters exist for the key.
	VariableSetting(key model.ParameterKey) (*VariableSetting, error)

	// SupplyFreq returns the supply frequency of a uniform speed motor.
	// Returns ErrNotFound if no motor bearing row exists for the key.
	SupplyFreq(key model.ParameterKey) (float64, error)

	// ParametersExist reports whether parameters of the category exist for key.
	ParametersExist(key model.ParameterKey, category model.Category) (bool, error)

	// CreateParameters inserts the parameter rows of a setting in one transaction.
	CreateParameters(p *ParameterSetting, now time.Time) error

	// UpdateParameters updates the motor and its parameter rows in one transaction.
	UpdateParameters(p *ParameterSetting, now time.Time) error

	// DeleteParametersByPLC deletes every parameter row of a PLC model.
	DeleteParametersByPLC(plc int) error
}
