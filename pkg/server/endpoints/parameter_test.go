package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

const variableParameterBody = `{
  "model": {"model": 7, "name": "half cell", "description": "half"},
  "motor": {"equipment_id": 1, "number": 9, "rated_current": 2.5, "pole": 4, "name": "ESWA_CellCuttingLinear_SVM_Axis_X", "category": "v3"},
  "parameter": {"moving_median_sample_number": 5},
  "threshold": {
    "current_corr_pvm_lower_warning": 0.8, "current_corr_pvm_lower_caution": 0.9,
    "current_noise_rms_upper_warning": 1.2, "current_noise_rms_upper_caution": 1.1,
    "current_noise_rms_lower_warning": 0.2, "current_noise_rms_lower_caution": 0.3
  }
}`

func parameterBody(t *testing.T, edit func(p map[string]map[string]interface{})) map[string]map[string]interface{} {
	t.Helper()
	var p map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(variableParameterBody), &p))
	if edit != nil {
		edit(p)
	}
	return p
}

var cellCutter = &store.MotorEquipment{EquipmentID: 1, Number: 9, Name: "ESWA_CellCuttingLinear_SVM_Axis_X", Category: model.CategoryV3}

func TestGetParameter(t *testing.T) {
	key := model.ParameterKey{EquipmentID: 1, MotorNumber: 9, PLC: 7}

	t.Run("renders the stored setting", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(cellCutter, nil)
		m.PLC.On("Model", 7).Return(&model.PLCModel{Model: 7, Name: "half cell", Description: "half"}, nil)
		setting := variableSetting()
		setting.EquipmentID, setting.Number, setting.Category = 1, 9, model.CategoryV3
		setting.MovingMedianSampleNumber = 5
		m.Services.On("VariableSetting", key).Return(setting, nil)

		w := serve(s, "GET", "/api/v1/setting-client/parameter?equipment_id=1&motor_number=9&plc=7", nil)
		requireStatus(t, w, http.StatusOK)

		var p store.ParameterSetting
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "half cell", p.Model.Name)
		assert.Equal(t, model.CategoryV3, p.Motor.Category)
		require.NotNil(t, p.Parameter.MovingMedianSampleNumber)
		assert.Equal(t, 5, *p.Parameter.MovingMedianSampleNumber)
		assert.NoError(t, p.Validate())
	})

	t.Run("unknown model", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(cellCutter, nil)
		m.PLC.On("Model", 7).Return(nil, store.ErrNotFound)

		w := serve(s, "GET", "/api/v1/setting-client/parameter?equipment_id=1&motor_number=9&plc=7", nil)
		requireStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "PLC 모델 7이 존재하지 않습니다.", errorMessage(t, w))
	})

	t.Run("unknown motor", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(nil, store.ErrNotFound)

		w := serve(s, "GET", "/api/v1/setting-client/parameter?equipment_id=1&motor_number=9&plc=7", nil)
		requireStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "1번 호기에 9번 모터가 존재하지 않습니다.", errorMessage(t, w))
	})
}

func TestUpdateParameter(t *testing.T) {
	t.Run("renames the model and overwrites the parameters", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.PLC.On("UpdateModel", &model.PLCModel{EquipmentID: 1, Model: 7, Name: "half cell", Description: "half"}).Return(nil)
		m.Services.On("UpdateParameters", mock.MatchedBy(func(p *store.ParameterSetting) bool {
			return p.Key() == model.ParameterKey{EquipmentID: 1, MotorNumber: 9, PLC: 7}
		}), at(testNow)).Return(nil)

		w := serve(s, "PUT", "/api/v1/setting-client/parameter", parameterBody(t, nil))
		requireStatus(t, w, http.StatusOK)
	})

	t.Run("leaves the factory model untouched", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		body := parameterBody(t, func(p map[string]map[string]interface{}) { p["model"]["model"] = 31 })

		w := serve(s, "PUT", "/api/v1/setting-client/parameter", body)
		requireStatus(t, w, http.StatusOK)
		assert.Equal(t, "null", w.Body.String())
	})

	t.Run("rejects incomplete parameters", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		body := parameterBody(t, func(p map[string]map[string]interface{}) {
			delete(p["threshold"], "current_corr_pvm_lower_warning")
		})

		w := serve(s, "PUT", "/api/v1/setting-client/parameter", body)
		requireStatus(t, w, http.StatusUnprocessableEntity)
		assert.Contains(t, errorMessage(t, w), "current_corr_pvm_lower_warning")
	})

	t.Run("rejects a model without a name", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		body := parameterBody(t, func(p map[string]map[string]interface{}) { delete(p["model"], "name") })

		w := serve(s, "PUT", "/api/v1/setting-client/parameter", body)
		requireStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestCreateParameter(t *testing.T) {
	key := model.ParameterKey{EquipmentID: 1, MotorNumber: 9, PLC: 7}

	t.Run("creates the parameters and the model", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(cellCutter, nil)
		m.Services.On("ParametersExist", key, model.CategoryV3).Return(false, nil)
		m.PLC.On("ModelExists", 7).Return(false, nil)
		m.Services.On("CreateParameters", mock.Anything, at(testNow)).Return(nil)
		m.PLC.On("CreateModel", &model.PLCModel{LineID: 1, EquipmentID: 1, Model: 7, Name: "half cell", Description: "half"}).Return(nil)

		w := serve(s, "POST", "/api/v1/setting-client/parameter", parameterBody(t, nil))
		requireStatus(t, w, http.StatusCreated)
	})

	t.Run("category must match the motor", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(&store.MotorEquipment{EquipmentID: 1, Number: 9, Category: model.CategoryU3e}, nil)

		w := serve(s, "POST", "/api/v1/setting-client/parameter", parameterBody(t, nil))
		requireStatus(t, w, http.StatusForbidden)
		assert.Contains(t, errorMessage(t, w), "u3e")
	})

	t.Run("existing parameters conflict", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(cellCutter, nil)
		m.Services.On("ParametersExist", key, model.CategoryV3).Return(true, nil)

		w := serve(s, "POST", "/api/v1/setting-client/parameter", parameterBody(t, nil))
		requireStatus(t, w, http.StatusConflict)
		assert.Equal(t, msgParametersExist, errorMessage(t, w))
	})

	t.Run("existing model conflicts", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(cellCutter, nil)
		m.Services.On("ParametersExist", key, model.CategoryV3).Return(false, nil)
		m.PLC.On("ModelExists", 7).Return(true, nil)

		w := serve(s, "POST", "/api/v1/setting-client/parameter", parameterBody(t, nil))
		requireStatus(t, w, http.StatusConflict)
		assert.Equal(t, msgModelExists, errorMessage(t, w))
	})

	t.Run("incomplete parameters are forbidden", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(cellCutter, nil)
		m.Services.On("ParametersExist", key, model.CategoryV3).Return(false, nil)
		m.PLC.On("ModelExists", 7).Return(false, nil)
		body := parameterBody(t, func(p map[string]map[string]interface{}) { delete(p["parameter"], "moving_median_sample_number") })

		w := serve(s, "POST", "/api/v1/setting-client/parameter", body)
		requireStatus(t, w, http.StatusForbidden)
		assert.Equal(t, msgInvalidParameters, errorMessage(t, w))
	})

	t.Run("a concurrent insert conflicts", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("Motor", 1, 9).Return(cellCutter, nil)
		m.Services.On("ParametersExist", key, model.CategoryV3).Return(false, nil)
		m.PLC.On("ModelExists", 7).Return(false, nil)
		m.Services.On("CreateParameters", mock.Anything, mock.Anything).Return(store.ErrAlreadyExists)

		w := serve(s, "POST", "/api/v1/setting-client/parameter", parameterBody(t, nil))
		requireStatus(t, w, http.StatusConflict)
	})
}

func TestDeleteParameter(t *testing.T) {
	t.Run("removes the model and its parameters", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		m.Services.On("DeleteParametersByPLC", 7).Return(nil)
		m.PLC.On("DeleteModel", 7).Return(nil)

		w := serve(s, "DELETE", "/api/v1/setting-client/parameter?plc=7", nil)
		requireStatus(t, w, http.StatusOK)
		assert.Equal(t, "null", w.Body.String())
	})

	t.Run("the default model stays", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		w := serve(s, "DELETE", "/api/v1/setting-client/parameter?plc=3", nil)
		requireStatus(t, w, http.StatusForbidden)
		assert.Equal(t, msgDefaultModel, errorMessage(t, w))
	})
}
