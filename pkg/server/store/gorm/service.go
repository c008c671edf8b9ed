package gorm

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// Ensure ServiceStore implements store.ServiceStore
var _ store.ServiceStore = (*ServiceStore)(nil)

const motorEquipmentSQL = `SELECT e.line_id, e.name AS equipment_name, m.equipment_id, m.number, m.name, m.category
FROM equipment e
JOIN motor m ON m.equipment_id = e.id`

const uniformSettingSQL = `SELECT e.line_id, e.id AS equipment_id, e.name AS equipment_name,
  m.number, m.rated_current, m.pole, m.name, m.category, m.gear_ratio, m.max_current,
  mb.plc, mb.supply_freq,
  mb.moving_median_sample_number AS motor_bearing_moving_median_sample_number,
  mb.motor_bearing_ball_diameter, mb.motor_bearing_pitch_diameter, mb.motor_bearing_ball_number,
  eb.bearing_number AS external_bearing_number,
  eb.moving_median_sample_number AS external_bearing_moving_median_sample_number,
  eb.external_bearing_ball_diameter, eb.external_bearing_pitch_diameter, eb.external_bearing_ball_number,
  eb.external_bearing_feature_warning, eb.external_bearing_feature_caution,
  tb.bearing_number AS tension_bearing_number,
  tb.moving_median_sample_number AS tension_bearing_moving_median_sample_number,
  tb.tension_bearing_ball_diameter, tb.tension_bearing_pitch_diameter, tb.tension_bearing_ball_number,
  tb.tension_bearing_feature_warning, tb.tension_bearing_feature_caution,
  t.stator_feature_warning, t.stator_feature_caution,
  t.motor_bearing_feature_warning, t.motor_bearing_feature_caution,
  t.gear_shaft_feature_warning, t.gear_shaft_feature_caution,
  t.coupling_feature_warning, t.coupling_feature_caution,
  t.belt_feature_warning, t.belt_feature_caution
FROM equipment e
JOIN motor m ON m.equipment_id = e.id
JOIN motor_bearing mb ON mb.equipment_id = m.equipment_id AND mb.motor_number = m.number
JOIN external_bearing eb ON eb.equipment_id = mb.equipment_id AND eb.motor_number = mb.motor_number AND eb.plc = mb.plc
LEFT JOIN tension_bearing tb ON tb.equipment_id = mb.equipment_id AND tb.motor_number = mb.motor_number AND tb.plc = mb.plc
JOIN uniform_speed_threshold t ON t.equipment_id = mb.equipment_id AND t.motor_number = mb.motor_number AND t.plc = mb.plc
WHERE m.category IN ('u3e', 'u3t') AND (m.category = 'u3e' OR tb.id IS NOT NULL) AND mb.plc = ?`

const variableSettingSQL = `SELECT e.line_id, e.id AS equipment_id, e.name AS equipment_name,
  m.number, m.rated_current, m.pole, m.name, m.category, m.gear_ratio, m.max_current,
  v.plc, v.moving_median_sample_number, v.template,
  t.current_corr_pvm_lower_warning, t.current_corr_pvm_lower_caution,
  t.current_noise_rms_upper_warning, t.current_noise_rms_upper_caution,
  t.current_noise_rms_lower_warning, t.current_noise_rms_lower_caution
FROM equipment e
JOIN motor m ON m.equipment_id = e.id
JOIN variable v ON v.equipment_id = m.equipment_id AND v.motor_number = m.number
JOIN variable_speed_threshold t ON t.equipment_id = v.equipment_id AND t.motor_number = v.motor_number AND t.plc = v.plc
WHERE m.category = 'v3' AND v.plc = ?`

const settingOrder = ` ORDER BY m.category, m.equipment_id, m.number`

// ServiceStore implements store.ServiceStore using GORM
type ServiceStore struct {
	db *gorm.DB
}

// NewServiceStore creates a new ServiceStore
func NewServiceStore(db *gorm.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

// ListEquipment returns every equipment row ordered by id.
func (s *ServiceStore) ListEquipment() ([]model.Equipment, error) {
	var rows []model.Equipment
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LineEquipment returns the equipment of the line with the given name.
func (s *ServiceStore) LineEquipment(lineName string) ([]store.LineEquipment, error) {
	var rows []store.LineEquipment
	err := s.db.Table("line l").
		Select("l.category, l.name AS line_name, e.id AS equipment_id, e.name AS equipment_name").
		Joins("JOIN equipment e ON e.line_id = l.id").
		Where("l.name = ?", lineName).
		Order("e.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Equipment returns an equipment by id.
func (s *ServiceStore) Equipment(id int) (*model.Equipment, error) {
	var e model.Equipment
	if err := s.db.Where("id = ?", id).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// EquipmentByName returns an equipment by name.
func (s *ServiceStore) EquipmentByName(name string) (*model.Equipment, error) {
	var e model.Equipment
	if err := s.db.Where("name = ?", name).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// MotorEquipment returns every motor ordered by equipment and number.
func (s *ServiceStore) MotorEquipment() ([]store.MotorEquipment, error) {
	var rows []store.MotorEquipment
	err := s.db.Raw(motorEquipmentSQL + ` ORDER BY m.equipment_id, m.number`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MotorsInEquipment returns the motors of one equipment ordered by number.
func (s *ServiceStore) MotorsInEquipment(equipmentID int) ([]store.MotorEquipment, error) {
	var rows []store.MotorEquipment
	err := s.db.Raw(motorEquipmentSQL+` WHERE m.equipment_id = ? ORDER BY m.number`, equipmentID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Motor returns one motor with its equipment.
func (s *ServiceStore) Motor(equipmentID, number int) (*store.MotorEquipment, error) {
	var rows []store.MotorEquipment
	err := s.db.Raw(motorEquipmentSQL+` WHERE m.equipment_id = ? AND m.number = ?`, equipmentID, number).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return &rows[0], nil
}

// UniformSettings returns the settings of every u3e and u3t motor under plc,
// external bearing motors first.
func (s *ServiceStore) UniformSettings(plc int) ([]store.UniformSetting, error) {
	var rows []store.UniformSetting
	if err := s.db.Raw(uniformSettingSQL+settingOrder, plc).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		withUniformConstants(&rows[i])
	}
	return rows, nil
}

// VariableSettings returns the settings of every v3 motor under plc.
func (s *ServiceStore) VariableSettings(plc int) ([]store.VariableSetting, error) {
	var rows []store.VariableSetting
	if err := s.db.Raw(variableSettingSQL+settingOrder, plc).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		if err := withTemplate(&rows[i]); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// UniformSetting returns the settings of one uniform speed motor.
func (s *ServiceStore) UniformSetting(key model.ParameterKey) (*store.UniformSetting, error) {
	var rows []store.UniformSetting
	err := s.db.Raw(uniformSettingSQL+` AND m.equipment_id = ? AND m.number = ?`,
		key.PLC, key.EquipmentID, key.MotorNumber).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	withUniformConstants(&rows[0])
	return &rows[0], nil
}

// VariableSetting returns the settings of one variable speed motor.
func (s *ServiceStore) VariableSetting(key model.ParameterKey) (*store.VariableSetting, error) {
	var rows []store.VariableSetting
	err := s.db.Raw(variableSettingSQL+` AND m.equipment_id = ? AND m.number = ?`,
		key.PLC, key.EquipmentID, key.MotorNumber).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	if err := withTemplate(&rows[0]); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func withUniformConstants(u *store.UniformSetting) {
	u.ThresholdMinimumCurrent = store.ThresholdMinimumCurrent
	u.TestSignalNum = store.TestSignalNum
}

func withTemplate(v *store.VariableSetting) error {
	v.ThresholdMinimumCurrent = store.ThresholdMinimumCurrent
	if len(v.Template) == 0 {
		return nil
	}
	t, err := format.DecodeTemplate(v.Template)
	if err != nil {
		return fmt.Errorf("template of motor %d-%d: %w", v.EquipmentID, v.Number, err)
	}
	v.TemplateU, v.TemplateV, v.TemplateW = t.U, t.V, t.W
	return nil
}

// SupplyFreq returns the supply frequency of a uniform speed motor.
func (s *ServiceStore) SupplyFreq(key model.ParameterKey) (float64, error) {
	var freqs []float64
	err := s.db.Model(&model.MotorBearing{}).
		Where("equipment_id = ? AND motor_number = ? AND plc = ?", key.EquipmentID, key.MotorNumber, key.PLC).
		Limit(1).
		Pluck("supply_freq", &freqs).Error
	if err != nil {
		return 0, err
	}
	if len(freqs) == 0 {
		return 0, store.ErrNotFound
	}
	return freqs[0], nil
}

func keyWhere(key model.ParameterKey) map[string]interface{} {
	return map[string]interface{}{
		"equipment_id": key.EquipmentID,
		"motor_number": key.MotorNumber,
		"plc":          key.PLC,
	}
}

// ParametersExist reports whether parameters of the category exist for key.
// Uniform speed motors are checked on motor_bearing, others on variable.
func (s *ServiceStore) ParametersExist(key model.ParameterKey, category model.Category) (bool, error) {
	var table interface{} = &model.Variable{}
	if category.IsUniform() {
		table = &model.MotorBearing{}
	}
	var n int64
	if err := s.db.Model(table).Where(keyWhere(key)).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *ServiceStore) parameterRows(p *store.ParameterSetting, now time.Time) ([]interface{}, error) {
	if p.Motor.Category.IsUniform() {
		mb, err := p.MotorBearing(now)
		if err != nil {
			return nil, err
		}
		eb, err := p.ExternalBearing(now)
		if err != nil {
			return nil, err
		}
		t, err := p.UniformThreshold(now)
		if err != nil {
			return nil, err
		}
		rows := []interface{}{mb, eb}
		if p.Motor.Category == model.CategoryU3t || p.Parameter.TensionBearingFeatureWarning != nil {
			tb, err := p.TensionBearing(now)
			if err != nil {
				return nil, err
			}
			rows = append(rows, tb)
		}
		return append(rows, t), nil
	}

	v, err := p.Variable(now)
	if err != nil {
		return nil, err
	}
	t, err := p.VariableThreshold(now)
	if err != nil {
		return nil, err
	}
	return []interface{}{v, t}, nil
}

// CreateParameters inserts the parameter rows of a setting in one transaction.
func (s *ServiceStore) CreateParameters(p *store.ParameterSetting, now time.Time) error {
	rows, err := s.parameterRows(p, now)
	if err != nil {
		return err
	}
	return translate(s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// UpdateParameters updates the motor and its parameter rows in one
// transaction. Tension bearing rows are only touched when the setting
// carries a tension bearing number.
func (s *ServiceStore) UpdateParameters(p *store.ParameterSetting, now time.Time) error {
	key := p.Key()
	return translate(s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Motor{}).
			Where("equipment_id = ? AND number = ?", key.EquipmentID, key.MotorNumber).
			Updates(p.MotorRow(now)).Error
		if err != nil {
			return err
		}

		var rows []interface{}
		if p.Motor.Category.IsUniform() {
			mb, err := p.MotorBearing(now)
			if err != nil {
				return err
			}
			eb, err := p.ExternalBearing(now)
			if err != nil {
				return err
			}
			t, err := p.UniformThreshold(now)
			if err != nil {
				return err
			}
			rows = append(rows, mb, eb, t)
			if p.Parameter.HasTension() {
				tb, err := p.TensionBearing(now)
				if err != nil {
					return err
				}
				rows = append(rows, tb)
			}
		} else {
			t, err := p.VariableThreshold(now)
			if err != nil {
				return err
			}
			v, err := p.Variable(now)
			if err != nil {
				return err
			}
			rows = append(rows, t, v)
		}

		for _, row := range rows {
			columns, err := columnsExcept(tx, row, "id", "equipment_id", "motor_number", "plc", "template")
			if err != nil {
				return err
			}
			err = tx.Model(row).Where(keyWhere(key)).Select(columns).Updates(row).Error
			if err != nil {
				return err
			}
		}
		return nil
	}))
}


// DeleteParametersByPLC deletes every parameter row of a PLC model.
func (s *ServiceStore) DeleteParametersByPLC(plc int) error {
	tables := []interface{}{
		&model.ExternalBearing{},
		&model.MotorBearing{},
		&model.TensionBearing{},
		&model.UniformSpeedThreshold{},
		&model.Variable{},
		&model.VariableSpeedThreshold{},
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tables {
			if err := tx.Where("plc = ?", plc).Delete(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
