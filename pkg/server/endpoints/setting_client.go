package endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/onepredict/lges-query-server/pkg/audit"
	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

var validate = validator.New()

// RegisterSettingClientEndpoints registers the endpoints used by the
// setting client and the diagnosis workers.
func RegisterSettingClientEndpoints(s *server.Server) {
	r := s.API.PathPrefix("/setting-client").Subrouter()
	stores := s.Stores

	r.HandleFunc("/motor-equipment-category", handleMotorCategory(stores.Services)).Methods("GET")
	r.HandleFunc("/single-setting-parameter", handleSingleSetting(stores.Services)).Methods("GET")
	r.HandleFunc("/motor-equipment", handleMotorEquipment(stores.Services)).Methods("GET")
	r.HandleFunc("/setting-parameter", handleSettingParameters(stores.Services)).Methods("GET")

	registerMetadataEndpoints(r, s)

	r.HandleFunc("/fdc-config", handleGetFDCConfig(stores.FDC)).Methods("GET")
	r.HandleFunc("/fdc-config", handleUpdateFDCConfig(stores.FDC)).Methods("POST")

	registerPLCEndpoints(r, s)
	registerParameterEndpoints(r, s)
}

func handleMotorCategory(services store.ServiceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentID, err := intParam(r, "equipment_id")
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		number, err := intParam(r, "motor_number")
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		motor, err := services.Motor(equipmentID, number)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, motor.Category.String())
	}
}

func parseCategory(r *http.Request) (model.Category, error) {
	raw := r.URL.Query().Get("category")
	c, err := model.CategoryString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid category %q", format.ErrArgument, raw)
	}
	return c, nil
}

func handleSingleSetting(services store.ServiceStore) http.HandlerFunc {
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
		category, err := parseCategory(r)
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		var setting interface{}
		if category.IsUniform() {
			setting, err = services.UniformSetting(key)
		} else {
			setting, err = services.VariableSetting(key)
		}
		if err != nil {
			respondWithFailure(w, settingError(err, key.PLC))
			return
		}
		respondWithJSON(w, http.StatusOK, setting)
	}
}

func handleMotorEquipment(services store.ServiceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := services.MotorEquipment()
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

// handleSettingParameters lists the uniform speed settings followed by
// the variable speed settings of a PLC model.
func handleSettingParameters(services store.ServiceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plc, err := intParam(r, "plc")
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		uniform, err := services.UniformSettings(plc)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		variable, err := services.VariableSettings(plc)
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		settings := make([]interface{}, 0, len(uniform)+len(variable))
		for i := range uniform {
			settings = append(settings, &uniform[i])
		}
		for i := range variable {
			settings = append(settings, &variable[i])
		}
		respondWithJSON(w, http.StatusOK, settings)
	}
}

// handleGetFDCConfig returns blank fields while the configuration row is
// not seeded.
func handleGetFDCConfig(fdc store.FDCStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		config, err := fdc.Config()
		if errors.Is(err, store.ErrNotFound) {
			respondWithJSON(w, http.StatusOK, model.FDCConfig{})
			return
		}
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, config)
	}
}

func handleUpdateFDCConfig(fdc store.FDCStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var config model.FDCConfig
		if err := decodeBody(r, &config); err != nil {
			respondWithFailure(w, err)
			return
		}
		if err := validate.Struct(&config); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		err := fdc.UpdateConfig(&config)
		event := audit.FDCConfigEvent{
			ClientIP: clientIP(r),
			Host:     config.Host,
			Topic:    config.Topic,
			Success:  err == nil,
		}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		audit.Log(event)

		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, config)
	}
}
