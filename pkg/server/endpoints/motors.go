package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// motorFanout bounds the motors queried at once per request.
const motorFanout = 4

// motorRows is a JSON object keyed motor{n} that keeps insertion order.
type motorRows struct {
	keys []string
	rows map[string]format.Row
}

func newMotorRows() *motorRows {
	return &motorRows{rows: make(map[string]format.Row)}
}

func (m *motorRows) add(key string, row format.Row) {
	if _, ok := m.rows[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.rows[key] = row
}

func (m *motorRows) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.rows[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// buildMotorRows runs build for every motor number and collects the rows
// in the order of numbers. A nil row leaves the motor out. When several
// motors fail, the error of the first one in numbers is returned.
func buildMotorRows(
	ctx context.Context,
	numbers []int,
	build func(ctx context.Context, number int) (format.Row, error),
) (*motorRows, error) {
	rows := make([]format.Row, len(numbers))
	errs := make([]error, len(numbers))

	var g errgroup.Group
	g.SetLimit(motorFanout)
	for i, n := range numbers {
		i, n := i, n
		g.Go(func() error {
			row, err := build(ctx, n)
			rows[i], errs[i] = row, err
			return err
		})
	}
	_ = g.Wait()

	out := newMotorRows()
	for i, n := range numbers {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if rows[i] != nil {
			out.add(motorKey(n), rows[i])
		}
	}
	return out, nil
}

// sortBy reorders the motors by less over their rows.
func (m *motorRows) sortBy(less func(a, b format.Row) bool) {
	sort.SliceStable(m.keys, func(i, j int) bool {
		return less(m.rows[m.keys[i]], m.rows[m.keys[j]])
	})
}

// motorSetting is a motor with the parameters of the PLC model it runs.
type motorSetting struct {
	Motor      *store.MotorEquipment
	CurrentPLC int
	Thresholds map[string]interface{}
}

// loadMotorSetting reads a motor, the model its PLC reports and the
// thresholds configured for that model.
func loadMotorSetting(stores *store.Stores, equipmentID, number int) (*motorSetting, error) {
	motor, err := stores.Services.Motor(equipmentID, number)
	if errors.Is(err, store.ErrNotFound) {
		return nil, format.NewHTTPError(http.StatusNotFound, "%d번 호기에 %d번 모터가 존재하지 않습니다.", equipmentID, number)
	}
	if err != nil {
		return nil, err
	}

	current, err := stores.PLC.CurrentModel(equipmentID)
	if err != nil {
		return nil, err
	}

	key := model.ParameterKey{EquipmentID: equipmentID, MotorNumber: number, PLC: current}
	var thresholds map[string]interface{}
	if motor.Category.IsUniform() {
		setting, err := stores.Services.UniformSetting(key)
		if err != nil {
			return nil, settingError(err, current)
		}
		thresholds = setting.Thresholds()
	} else {
		setting, err := stores.Services.VariableSetting(key)
		if err != nil {
			return nil, settingError(err, current)
		}
		thresholds = setting.Thresholds()
	}

	return &motorSetting{Motor: motor, CurrentPLC: current, Thresholds: thresholds}, nil
}

func settingError(err error, plc int) error {
	if errors.Is(err, store.ErrNotFound) {
		return format.NewHTTPError(http.StatusNotFound, "PLC 모델 %d에 해당하는 파라미터가 없습니다.", plc)
	}
	return err
}
