package store

import (
	"fmt"
	"time"

	"github.com/onepredict/lges-query-server/pkg/model"
)

// ParameterModel is the PLC model a parameter set belongs to
type ParameterModel struct {
	Model       int    `json:"model"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// ParameterMotor is the motor part of a parameter set
type ParameterMotor struct {
	EquipmentID  int            `json:"equipment_id" validate:"required"`
	Number       int            `json:"number" validate:"required"`
	RatedCurrent float64        `json:"rated_current"`
	Pole         *int           `json:"pole"`
	Name         string         `json:"name" validate:"required"`
	Category     model.Category `json:"category"`
	GearRatio    *float64       `json:"gear_ratio"`
	MaxCurrent   *float64       `json:"max_current"`
}

// ParameterValues holds the parameters of either speed profile. Uniform
// speed motors fill the bearing fields, variable speed motors fill
// MovingMedianSampleNumber.
type ParameterValues struct {
	SupplyFreq                              *float64 `json:"supply_freq,omitempty"`
	MotorBearingMovingMedianSampleNumber    *int     `json:"motor_bearing_moving_median_sample_number,omitempty"`
	MotorBearingBallDiameter                *float64 `json:"motor_bearing_ball_diameter,omitempty"`
	MotorBearingBallNumber                  *int     `json:"motor_bearing_ball_number,omitempty"`
	MotorBearingPitchDiameter               *float64 `json:"motor_bearing_pitch_diameter,omitempty"`
	ExternalBearingMovingMedianSampleNumber *int     `json:"external_bearing_moving_median_sample_number,omitempty"`
	ExternalBearingBallDiameter             *float64 `json:"external_bearing_ball_diameter,omitempty"`
	ExternalBearingBallNumber               *int     `json:"external_bearing_ball_number,omitempty"`
	ExternalBearingPitchDiameter            *float64 `json:"external_bearing_pitch_diameter,omitempty"`
	ExternalBearingNumber                   *int     `json:"external_bearing_number,omitempty"`
	TensionBearingMovingMedianSampleNumber  *int     `json:"tension_bearing_moving_median_sample_number,omitempty"`
	TensionBearingBallDiameter              *float64 `json:"tension_bearing_ball_diameter,omitempty"`
	TensionBearingBallNumber                *int     `json:"tension_bearing_ball_number,omitempty"`
	TensionBearingPitchDiameter             *float64 `json:"tension_bearing_pitch_diameter,omitempty"`
	TensionBearingNumber                    *int     `json:"tension_bearing_number,omitempty"`
	TensionBearingFeatureWarning            *float64 `json:"tension_bearing_feature_warning,omitempty"`
	TensionBearingFeatureCaution            *float64 `json:"tension_bearing_feature_caution,omitempty"`

	MovingMedianSampleNumber *int `json:"moving_median_sample_number,omitempty"`
}

// HasTension reports whether the parameters describe a tension bearing.
func (v *ParameterValues) HasTension() bool {
	return v.TensionBearingNumber != nil
}

// ThresholdValues holds the diagnosis thresholds of either speed profile.
type ThresholdValues struct {
	StatorFeatureWarning          *float64 `json:"stator_feature_warning,omitempty"`
	StatorFeatureCaution          *float64 `json:"stator_feature_caution,omitempty"`
	MotorBearingFeatureWarning    *float64 `json:"motor_bearing_feature_warning,omitempty"`
	MotorBearingFeatureCaution    *float64 `json:"motor_bearing_feature_caution,omitempty"`
	GearShaftFeatureWarning       *float64 `json:"gear_shaft_feature_warning,omitempty"`
	GearShaftFeatureCaution       *float64 `json:"gear_shaft_feature_caution,omitempty"`
	ExternalBearingFeatureWarning *float64 `json:"external_bearing_feature_warning,omitempty"`
	ExternalBearingFeatureCaution *float64 `json:"external_bearing_feature_caution,omitempty"`
	CouplingFeatureWarning        *float64 `json:"coupling_feature_warning,omitempty"`
	CouplingFeatureCaution        *float64 `json:"coupling_feature_caution,omitempty"`
	BeltFeatureWarning            *float64 `json:"belt_feature_warning,omitempty"`
	BeltFeatureCaution            *float64 `json:"belt_feature_caution,omitempty"`
	TensionBearingFeatureWarning  *float64 `json:"tension_bearing_feature_warning,omitempty"`
	TensionBearingFeatureCaution  *float64 `json:"tension_bearing_feature_caution,omitempty"`

	CurrentCorrPVMLowerWarning  *float64 `json:"current_corr_pvm_lower_warning,omitempty"`
	CurrentCorrPVMLowerCaution  *float64 `json:"current_corr_pvm_lower_caution,omitempty"`
	CurrentNoiseRMSUpperWarning *float64 `json:"current_noise_rms_upper_warning,omitempty"`
	CurrentNoiseRMSUpperCaution *float64 `json:"current_noise_rms_upper_caution,omitempty"`
	CurrentNoiseRMSLowerWarning *float64 `json:"current_noise_rms_lower_warning,omitempty"`
	CurrentNoiseRMSLowerCaution *float64 `json:"current_noise_rms_lower_caution,omitempty"`
}

// ParameterSetting is the parameter set of one motor under one PLC model,
// as edited in the setting client
type ParameterSetting struct {
	Model     ParameterModel  `json:"model"`
	Motor     ParameterMotor  `json:"motor"`
	Parameter ParameterValues `json:"parameter"`
	Threshold ThresholdValues `json:"threshold"`
}

// Key returns the key of the parameter rows.
func (p *ParameterSetting) Key() model.ParameterKey {
	return model.ParameterKey{EquipmentID: p.Motor.EquipmentID, MotorNumber: p.Motor.Number, PLC: p.Model.Model}
}

type missing []string

func (m *missing) float(name string, v *float64) float64 {
	if v == nil {
		*m = append(*m, name)
		return 0
	}
	return *v
}

func (m *missing) int(name string, v *int) int {
	if v == nil {
		*m = append(*m, name)
		return 0
	}
	return *v
}

func (m missing) err() error {
	if len(m) == 0 {
		return nil
	}
	return fmt.Errorf("missing parameters: %v", []string(m))
}

// Validate checks that the fields required by the motor category are set.
func (p *ParameterSetting) Validate() error {
	var m missing
	switch p.Motor.Category {
	case model.CategoryU3e, model.CategoryU3t:
		if _, err := p.MotorBearing(time.Time{}); err != nil {
			m = append(m, err.Error())
		}
		if _, err := p.ExternalBearing(time.Time{}); err != nil {
			m = append(m, err.Error())
		}
		if _, err := p.UniformThreshold(time.Time{}); err != nil {
			m = append(m, err.Error())
		}
		if p.Motor.Category == model.CategoryU3t {
			if _, err := p.TensionBearing(time.Time{}); err != nil {
				m = append(m, err.Error())
			}
		}
	case model.CategoryV3:
		if _, err := p.Variable(time.Time{}); err != nil {
			m = append(m, err.Error())
		}
		if _, err := p.VariableThreshold(time.Time{}); err != nil {
			m = append(m, err.Error())
		}
	default:
		return fmt.Errorf("category %s has no editable parameters", p.Motor.Category)
	}
	if len(m) > 0 {
		return fmt.Errorf("invalid %s parameters: %v", p.Motor.Category, []string(m))
	}
	return nil
}

// MotorRow returns the motor columns to update.
func (p *ParameterSetting) MotorRow(now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"equipment_id":  p.Motor.EquipmentID,
		"number":        p.Motor.Number,
		"rated_current": p.Motor.RatedCurrent,
		"pole":          p.Motor.Pole,
		"name":          p.Motor.Name,
		"category":      p.Motor.Category.String(),
		"gear_ratio":    p.Motor.GearRatio,
		"max_current":   p.Motor.MaxCurrent,
		"updated_time":  now,
	}
}

// MotorBearing builds the motor bearing row of a uniform speed setting.
func (p *ParameterSetting) MotorBearing(now time.Time) (*model.MotorBearing, error) {
	var m missing
	k := p.Key()
	row := &model.MotorBearing{
		EquipmentID:              k.EquipmentID,
		MotorNumber:              k.MotorNumber,
		PLC:                      k.PLC,
		UpdatedTime:              now,
		SupplyFreq:               m.float("supply_freq", p.Parameter.SupplyFreq),
		MovingMedianSampleNumber: m.int("motor_bearing_moving_median_sample_number", p.Parameter.MotorBearingMovingMedianSampleNumber),
		BallDiameter:             p.Parameter.MotorBearingBallDiameter,
		PitchDiameter:            p.Parameter.MotorBearingPitchDiameter,
		BallNumber:               p.Parameter.MotorBearingBallNumber,
	}
	return row, m.err()
}

// ExternalBearing builds the external bearing row of a uniform speed setting.
func (p *ParameterSetting) ExternalBearing(now time.Time) (*model.ExternalBearing, error) {
	var m missing
	k := p.Key()
	row := &model.ExternalBearing{
		EquipmentID:              k.EquipmentID,
		MotorNumber:              k.MotorNumber,
		PLC:                      k.PLC,
		UpdatedTime:              now,
		BearingNumber:            m.int("external_bearing_number", p.Parameter.ExternalBearingNumber),
		MovingMedianSampleNumber: m.int("external_bearing_moving_median_sample_number", p.Parameter.ExternalBearingMovingMedianSampleNumber),
		BallDiameter:             p.Parameter.ExternalBearingBallDiameter,
		PitchDiameter:            p.Parameter.ExternalBearingPitchDiameter,
		BallNumber:               p.Parameter.ExternalBearingBallNumber,
		FeatureWarning:           m.float("external_bearing_feature_warning", p.Threshold.ExternalBearingFeatureWarning),
		FeatureCaution:           m.float("external_bearing_feature_caution", p.Threshold.ExternalBearingFeatureCaution),
	}
	return row, m.err()
}

// TensionBearing builds the tension bearing row of a u3t setting. The
// feature levels may come with either the parameters or the thresholds.
func (p *ParameterSetting) TensionBearing(now time.Time) (*model.TensionBearing, error) {
	var m missing
	k := p.Key()
	warning, caution := p.Parameter.TensionBearingFeatureWarning, p.Parameter.TensionBearingFeatureCaution
	if warning == nil {
		warning = p.Threshold.TensionBearingFeatureWarning
	}
	if caution == nil {
		caution = p.Threshold.TensionBearingFeatureCaution
	}
	row := &model.TensionBearing{
		EquipmentID:              k.EquipmentID,
		MotorNumber:              k.MotorNumber,
		PLC:                      k.PLC,
		UpdatedTime:              now,
		BearingNumber:            m.int("tension_bearing_number", p.Parameter.TensionBearingNumber),
		MovingMedianSampleNumber: m.int("tension_bearing_moving_median_sample_number", p.Parameter.TensionBearingMovingMedianSampleNumber),
		BallDiameter:             p.Parameter.TensionBearingBallDiameter,
		PitchDiameter:            p.Parameter.TensionBearingPitchDiameter,
		BallNumber:               p.Parameter.TensionBearingBallNumber,
		FeatureWarning:           m.float("tension_bearing_feature_warning", warning),
		FeatureCaution:           m.float("tension_bearing_feature_caution", caution),
	}
	return row, m.err()
}

// UniformThreshold builds the threshold row of a uniform speed setting.
func (p *ParameterSetting) UniformThreshold(now time.Time) (*model.UniformSpeedThreshold, error) {
	var m missing
	k := p.Key()
	t := p.Threshold
	row := &model.UniformSpeedThreshold{
		EquipmentID:                k.EquipmentID,
		MotorNumber:                k.MotorNumber,
		PLC:                        k.PLC,
		UpdatedTime:                now,
		StatorFeatureWarning:       m.float("stator_feature_warning", t.StatorFeatureWarning),
		StatorFeatureCaution:       m.float("stator_feature_caution", t.StatorFeatureCaution),
		MotorBearingFeatureWarning: m.float("motor_bearing_feature_warning", t.MotorBearingFeatureWarning),
		MotorBearingFeatureCaution: m.float("motor_bearing_feature_caution", t.MotorBearingFeatureCaution),
		GearShaftFeatureWarning:    m.float("gear_shaft_feature_warning", t.GearShaftFeatureWarning),
		GearShaftFeatureCaution:    m.float("gear_shaft_feature_caution", t.GearShaftFeatureCaution),
		CouplingFeatureWarning:     m.float("coupling_feature_warning", t.CouplingFeatureWarning),
		CouplingFeatureCaution:     m.float("coupling_feature_caution", t.CouplingFeatureCaution),
		BeltFeatureWarning:         m.float("belt_feature_warning", t.BeltFeatureWarning),
		BeltFeatureCaution:         m.float("belt_feature_caution", t.BeltFeatureCaution),
	}
	return row, m.err()
}

// Variable builds the parameter row of a variable speed setting.
func (p *ParameterSetting) Variable(now time.Time) (*model.Variable, error) {
	var m missing
	k := p.Key()
	row := &model.Variable{
		EquipmentID:              k.EquipmentID,
		MotorNumber:              k.MotorNumber,
		PLC:                      k.PLC,
		UpdatedTime:              now,
		MovingMedianSampleNumber: m.int("moving_median_sample_number", p.Parameter.MovingMedianSampleNumber),
	}
	return row, m.err()
}

// VariableThreshold builds the threshold row of a variable speed setting.
// Parameters are always stored for three phases.
func (p *ParameterSetting) VariableThreshold(now time.Time) (*model.VariableSpeedThreshold, error) {
	var m missing
	k := p.Key()
	t := p.Threshold
	row := &model.VariableSpeedThreshold{
		EquipmentID:                 k.EquipmentID,
		MotorNumber:                 k.MotorNumber,
		PLC:                         k.PLC,
		UpdatedTime:                 now,
		PhaseNumber:                 3,
		CurrentCorrPVMLowerWarning:  m.float("current_corr_pvm_lower_warning", t.CurrentCorrPVMLowerWarning),
		CurrentCorrPVMLowerCaution:  m.float("current_corr_pvm_lower_caution", t.CurrentCorrPVMLowerCaution),
		CurrentNoiseRMSUpperWarning: m.float("current_noise_rms_upper_warning", t.CurrentNoiseRMSUpperWarning),
		CurrentNoiseRMSUpperCaution: m.float("current_noise_rms_upper_caution", t.CurrentNoiseRMSUpperCaution),
		CurrentNoiseRMSLowerWarning: m.float("current_noise_rms_lower_warning", t.CurrentNoiseRMSLowerWarning),
		CurrentNoiseRMSLowerCaution: m.float("current_noise_rms_lower_caution", t.CurrentNoiseRMSLowerCaution),
	}
	return row, m.err()
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// UniformParameterSetting renders a stored uniform speed setting the way
// the setting client edits it.
func UniformParameterSetting(s *UniformSetting, plc ParameterModel) *ParameterSetting {
	p := &ParameterSetting{
		Model: plc,
		Motor: ParameterMotor{
			EquipmentID:  s.EquipmentID,
			Number:       s.Number,
			RatedCurrent: s.RatedCurrent,
			Pole:         s.Pole,
			Name:         s.Name,
			Category:     s.Category,
			GearRatio:    s.GearRatio,
			MaxCurrent:   s.MaxCurrent,
		},
		Parameter: ParameterValues{
			SupplyFreq:                              floatPtr(s.SupplyFreq),
			MotorBearingMovingMedianSampleNumber:    intPtr(s.MotorBearingMovingMedianSampleNumber),
			MotorBearingBallDiameter:                s.MotorBearingBallDiameter,
			MotorBearingBallNumber:                  s.MotorBearingBallNumber,
			MotorBearingPitchDiameter:               s.MotorBearingPitchDiameter,
			ExternalBearingMovingMedianSampleNumber: intPtr(s.ExternalBearingMovingMedianSampleNumber),
			ExternalBearingBallDiameter:             s.ExternalBearingBallDiameter,
			ExternalBearingBallNumber:               s.ExternalBearingBallNumber,
			ExternalBearingPitchDiameter:            s.ExternalBearingPitchDiameter,
			ExternalBearingNumber:                   s.ExternalBearingNumber,
		},
		Threshold: ThresholdValues{
			StatorFeatureWarning:          floatPtr(s.StatorFeatureWarning),
			StatorFeatureCaution:          floatPtr(s.StatorFeatureCaution),
			MotorBearingFeatureWarning:    floatPtr(s.MotorBearingFeatureWarning),
			MotorBearingFeatureCaution:    floatPtr(s.MotorBearingFeatureCaution),
			GearShaftFeatureWarning:       floatPtr(s.GearShaftFeatureWarning),
			GearShaftFeatureCaution:       floatPtr(s.GearShaftFeatureCaution),
			ExternalBearingFeatureWarning: floatPtr(s.ExternalBearingFeatureWarning),
			ExternalBearingFeatureCaution: floatPtr(s.ExternalBearingFeatureCaution),
			CouplingFeatureWarning:        floatPtr(s.CouplingFeatureWarning),
			CouplingFeatureCaution:        floatPtr(s.CouplingFeatureCaution),
			BeltFeatureWarning:            floatPtr(s.BeltFeatureWarning),
			BeltFeatureCaution:            floatPtr(s.BeltFeatureCaution),
		},
	}
	if s.Category == model.CategoryU3t {
		p.Parameter.TensionBearingMovingMedianSampleNumber = s.TensionBearingMovingMedianSampleNumber
		p.Parameter.TensionBearingBallDiameter = s.TensionBearingBallDiameter
		p.Parameter.TensionBearingBallNumber = s.TensionBearingBallNumber
		p.Parameter.TensionBearingPitchDiameter = s.TensionBearingPitchDiameter
		p.Parameter.TensionBearingNumber = s.TensionBearingNumber
		p.Parameter.TensionBearingFeatureWarning = s.TensionBearingFeatureWarning
		p.Parameter.TensionBearingFeatureCaution = s.TensionBearingFeatureCaution
		p.Threshold.TensionBearingFeatureWarning = s.TensionBearingFeatureWarning
		p.Threshold.TensionBearingFeatureCaution = s.TensionBearingFeatureCaution
	}
	return p
}

// VariableParameterSetting renders a stored variable speed setting the
// way the setting client edits it.
func VariableParameterSetting(s *VariableSetting, plc ParameterModel) *ParameterSetting {
	return &ParameterSetting{
		Model: plc,
		Motor: ParameterMotor{
			EquipmentID:  s.EquipmentID,
			Number:       s.Number,
			RatedCurrent: s.RatedCurrent,
			Pole:         s.Pole,
			Name:         s.Name,
			Category:     s.Category,
			GearRatio:    s.GearRatio,
			MaxCurrent:   s.MaxCurrent,
		},
		Parameter: ParameterValues{
			MovingMedianSampleNumber: intPtr(s.MovingMedianSampleNumber),
		},
		Threshold: ThresholdValues{
			CurrentCorrPVMLowerWarning:  floatPtr(s.CurrentCorrPVMLowerWarning),
			CurrentCorrPVMLowerCaution:  floatPtr(s.CurrentCorrPVMLowerCaution),
			CurrentNoiseRMSUpperWarning: floatPtr(s.CurrentNoiseRMSUpperWarning),
			CurrentNoiseRMSUpperCaution: floatPtr(s.CurrentNoiseRMSUpperCaution),
			CurrentNoiseRMSLowerWarning: floatPtr(s.CurrentNoiseRMSLowerWarning),
			CurrentNoiseRMSLowerCaution: floatPtr(s.CurrentNoiseRMSLowerCaution),
		},
	}
}
