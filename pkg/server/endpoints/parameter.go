package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/onepredict/lges-query-server/pkg/audit"
	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// readOnlyPLCModel is the factory model the setting client may not edit.
const readOnlyPLCModel = 31

// PLC models are registered on line 1 whatever line the equipment is on.
const plcModelLineID = 1

const (
	msgParametersExist   = "해당 호기와 해당 모터 번호에 해당하는 모델 파라미터가 이미 존재합니다."
	msgModelExists       = "PLC 모델 번호가 중첩됩니다."
	msgInvalidParameters = "업데이트하려는 파라미터가 조건에 부합하지 않습니다."
	msgDefaultModel      = "디폴트 파라미터는 삭제가 불가능합니다."
)

func registerParameterEndpoints(r *mux.Router, s *server.Server) {
	r.HandleFunc("/parameter", handleGetParameter(s.Stores)).Methods("GET")
	r.HandleFunc("/parameter", handleUpdateParameter(s.Stores, s.Now)).Methods("PUT")
	r.HandleFunc("/parameter", handleCreateParameter(s.Stores, s.Now)).Methods("POST")
	r.HandleFunc("/parameter", handleDeleteParameter(s.Stores)).Methods("DELETE")
}

func auditParameter(r *http.Request, operation string, key model.ParameterKey, err error) {
	event := audit.ParameterEvent{
		Operation:   operation,
		ClientIP:    clientIP(r),
		EquipmentID: key.EquipmentID,
		MotorNumber: key.MotorNumber,
		PLC:         key.PLC,
		Success:     err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
}

func handleGetParameter(stores *store.Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var key model.ParameterKey
		var err error
		if key.EquipmentID, err = intParam(r, "equipment_id"); err != nil {
			respondWithFailure(w, err)
			return
		}
		if key.MotorNumber, err = intParam(r, "motor_number"); err != nil {
			respondWithFailure(w, err)
			return
		}
		if key.PLC, err = intParam(r, "plc"); err != nil {
			respondWithFailure(w, err)
			return
		}

		setting, err := readParameterSetting(stores, key)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, setting)
	}
}

func readParameterSetting(stores *store.Stores, key model.ParameterKey) (*store.ParameterSetting, error) {
	motor, err := stores.Services.Motor(key.EquipmentID, key.MotorNumber)
	if errors.Is(err, store.ErrNotFound) {
		return nil, format.NewHTTPError(http.StatusNotFound,
			"%d번 호기에 %d번 모터가 존재하지 않습니다.", key.EquipmentID, key.MotorNumber)
	}
	if err != nil {
		return nil, err
	}

	plc, err := stores.PLC.Model(key.PLC)
	if errors.Is(err, store.ErrNotFound) {
		return nil, format.NewHTTPError(http.StatusNotFound, "PLC 모델 %d이 존재하지 않습니다.", key.PLC)
	}
	if err != nil {
		return nil, err
	}
	pm := store.ParameterModel{Model: plc.Model, Name: plc.Name, Description: plc.Description}

	if motor.Category.IsUniform() {
		setting, err := stores.Services.UniformSetting(key)
		if err != nil {
			return nil, settingError(err, key.PLC)
		}
		return store.UniformParameterSetting(setting, pm), nil
	}
	setting, err := stores.Services.VariableSetting(key)
	if err != nil {
		return nil, settingError(err, key.PLC)
	}
	return store.VariableParameterSetting(setting, pm), nil
}

func decodeParameterSetting(r *http.Request) (*store.ParameterSetting, error) {
	var p store.ParameterSetting
	if err := decodeBody(r, &p); err != nil {
		return nil, err
	}
	if err := validate.Struct(&p); err != nil {
		return nil, format.NewHTTPError(http.StatusUnprocessableEntity, "%s", err.Error())
	}
	return &p, nil
}

// handleUpdateParameter renames the PLC model and overwrites the
// parameters of one motor. The factory model is left untouched.
func handleUpdateParameter(stores *store.Stores, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodeParameterSetting(r)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if p.Model.Model == readOnlyPLCModel {
			respondWithJSON(w, http.StatusOK, nil)
			return
		}

		err = updateParameterSetting(stores, p, now())
		auditParameter(r, "update", p.Key(), err)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, p)
	}
}

func updateParameterSetting(stores *store.Stores, p *store.ParameterSetting, now time.Time) error {
	if err := p.Validate(); err != nil {
		return format.NewHTTPError(http.StatusUnprocessableEntity, "%s", err.Error())
	}
	err := stores.PLC.UpdateModel(&model.PLCModel{
		EquipmentID: p.Motor.EquipmentID,
		Model:       p.Model.Model,
		Name:        p.Model.Name,
		Description: p.Model.Description,
	})
	if err != nil {
		return err
	}
	return stores.Services.UpdateParameters(p, now)
}

// handleCreateParameter adds a PLC model together with the parameters of
// one motor under it.
func handleCreateParameter(stores *store.Stores, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodeParameterSetting(r)
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		err = createParameterSetting(stores, p, now())
		auditParameter(r, "create", p.Key(), err)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, p)
	}
}

func createParameterSetting(stores *store.Stores, p *store.ParameterSetting, now time.Time) error {
	motor, err := stores.Services.Motor(p.Motor.EquipmentID, p.Motor.Number)
	if errors.Is(err, store.ErrNotFound) {
		return format.NewHTTPError(http.StatusNotFound,
			"%d번 호기에 %d번 모터가 존재하지 않습니다.", p.Motor.EquipmentID, p.Motor.Number)
	}
	if err != nil {
		return err
	}
	if motor.Category != p.Motor.Category {
		return format.NewHTTPError(http.StatusForbidden,
			"해당 모터의 카테고리값이 DB에 들어있는 카테고리값과 다릅니다. %s 카테고리로 수정해주세요.", motor.Category)
	}

	exists, err := stores.Services.ParametersExist(p.Key(), motor.Category)
	if err != nil {
		return err
	}
	if exists {
		return format.NewHTTPError(http.StatusConflict, msgParametersExist)
	}

	exists, err = stores.PLC.ModelExists(p.Model.Model)
	if err != nil {
		return err
	}
	if exists {
		return format.NewHTTPError(http.StatusConflict, msgModelExists)
	}

	if err := p.Validate(); err != nil {
		return format.NewHTTPError(http.StatusForbidden, msgInvalidParameters)
	}
	if err := stores.Services.CreateParameters(p, now); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return format.NewHTTPError(http.StatusConflict, msgParametersExist)
		}
		return format.NewHTTPError(http.StatusForbidden, msgInvalidParameters)
	}

	return stores.PLC.CreateModel(&model.PLCModel{
		LineID:      plcModelLineID,
		EquipmentID: p.Motor.EquipmentID,
		Model:       p.Model.Model,
		Name:        p.Model.Name,
		Description: p.Model.Description,
	})
}

// handleDeleteParameter removes a PLC model and every parameter row under
// it. The default model cannot be deleted.
func handleDeleteParameter(stores *store.Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plc, err := intParam(r, "plc")
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if plc == model.DefaultPLCModel {
			respondWithError(w, http.StatusForbidden, msgDefaultModel)
			return
		}

		err = stores.Services.DeleteParametersByPLC(plc)
		if err == nil {
			err = stores.PLC.DeleteModel(plc)
		}
		auditParameter(r, "delete", model.ParameterKey{PLC: plc}, err)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, nil)
	}
}
