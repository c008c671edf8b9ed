package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

const noPLCMessage = "해당 호기에 대한 plc 정보가 없습니다."

// plcModelView is a PLC model as listed on the dashboard.
type plcModelView struct {
	EquipmentID int    `json:"equipment_id"`
	Model       int    `json:"model"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func RegisterDashboardEndpoints(s *server.Server) {
	r := s.API.PathPrefix("/data/dashboard").Subrouter()

	// GET /data/dashboard/?equipment_id&plc - latest state of every motor
	r.HandleFunc("/", handleDashboard(s.Stores)).Methods("GET")
	r.HandleFunc("", handleDashboard(s.Stores)).Methods("GET")

	r.HandleFunc("/line-equipment", handleLineEquipment(s.Stores.Services, s.Settings)).Methods("GET")
	r.HandleFunc("/equipments", handleEquipments(s.Stores.Services)).Methods("GET")
	r.HandleFunc("/plc_models", handlePLCModels(s.Stores.PLC)).Methods("GET")
}

func handleDashboard(stores *store.Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentID, err := intParam(r, "equipment_id")
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		plc, err := optionalIntParam(r, "plc")
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		motors, err := stores.Services.MotorsInEquipment(equipmentID)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		byNumber := make(map[int]store.MotorEquipment, len(motors))
		numbers := make([]int, 0, len(motors))
		for _, m := range motors {
			byNumber[m.Number] = m
			numbers = append(numbers, m.Number)
		}

		rows, err := buildMotorRows(r.Context(), numbers, func(_ context.Context, n int) (format.Row, error) {
			return dashboardRow(stores, byNumber[n], plc)
		})
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

// dashboardRow joins the latest feature row of a motor with its latest
// trigger. Features are read under plc when given, otherwise under the
// model the PLC reports; the trigger always follows the reported model.
func dashboardRow(stores *store.Stores, m store.MotorEquipment, plc *int) (format.Row, error) {
	current, err := stores.PLC.CurrentModel(m.EquipmentID)
	if err != nil {
		return nil, err
	}
	featurePLC := current
	if plc != nil {
		featurePLC = *plc
	}

	row, err := stores.Features.LatestFeature(store.FeatureQuery{
		Table:       m.Category.FeatureTable(),
		Columns:     format.DashboardColumns(m.Category),
		EquipmentID: m.EquipmentID,
		MotorNumber: m.Number,
		PLC:         featurePLC,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, format.NewHTTPError(http.StatusNotImplemented,
			"DB에 %s에 해당하는 데이터가 존재하지 않습니다.", motorKey(m.Number))
	}
	if err != nil {
		return nil, err
	}

	row["acq_time"] = format.UnixValue(row["acq_time"])
	row["part"] = format.PartLabel(m.EquipmentName, m.Number)
	row["name"] = format.MotorCode(m.Name)
	row["label"] = m.Category.String()

	if m.Category.IsUniform() {
		key := model.ParameterKey{EquipmentID: m.EquipmentID, MotorNumber: m.Number, PLC: model.DefaultPLCModel}
		if plc != nil {
			key.PLC = *plc
		}
		freq, err := stores.Services.SupplyFreq(key)
		if errors.Is(err, store.ErrNotFound) {
			return nil, format.NewHTTPError(http.StatusNotFound, noPLCMessage)
		}
		if err != nil {
			return nil, err
		}
		row["supply_freq"] = freq
	}

	trigger, err := stores.Features.LatestTrigger(m.EquipmentID, m.Number, current)
	if errors.Is(err, store.ErrNotFound) {
		return nil, format.NewHTTPError(http.StatusNotImplemented,
			"DB에 %s에 해당하는 trigger 데이터가 존재하지 않습니다.", motorKey(m.Number))
	}
	if err != nil {
		return nil, err
	}
	row["status"] = format.StatusLabel(trigger.Status)
	row["plc_status"] = format.StatusLabel(trigger.PLCStatus)
	row["supply_freq_by_data"] = trigger.SupplyFreqByData
	row["rms_u"] = trigger.RMSU
	row["trigger_acq_time"] = format.UnixMillis(trigger.AcqTime)

	return format.RenameKeys(row), nil
}

func handleLineEquipment(services store.ServiceStore, settings func() *config.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := services.LineEquipment(settings().LineNum)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

func handleEquipments(services store.ServiceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := services.ListEquipment()
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

func handlePLCModels(plcStore store.PLCStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentID, err := intParam(r, "equipment_id")
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		models, err := plcStore.ModelsOf(equipmentID)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if len(models) == 0 {
			respondWithError(w, http.StatusNotFound, noPLCMessage)
			return
		}

		views := make([]plcModelView, len(models))
		for i, m := range models {
			views[i] = plcModelView{EquipmentID: m.EquipmentID, Model: m.Model, Name: m.Name, Description: m.Description}
		}
		respondWithJSON(w, http.StatusOK, views)
	}
}
