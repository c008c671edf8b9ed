package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

func RegisterTrendEndpoints(s *server.Server) {
	r := s.API.PathPrefix("/data/trend").Subrouter()

	r.HandleFunc("/trend-init", handleTrendInit()).Methods("GET")

	// GET /data/trend/{kind}?equipment_id&plc&start&end
	r.HandleFunc("/{kind:variable_diagnosis|uniform_diagnosis|load|operating}", handleTrend(s.Stores, s.Now)).Methods("GET")
}

func handleTrend(stores *store.Stores, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := format.ParseTrendKind(mux.Vars(r)["kind"])
		if err != nil {
			respondWithFailure(w, err)
			return
		}
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
		current := now()
		start, err := optionalTimeParam(r, "start", current.Location())
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		end, err := optionalTimeParam(r, "end", current.Location())
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		period := format.DeterminePeriod(start, end, current)

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
			return trendRow(stores, byNumber[n], kind, plc, period)
		})
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

// trendRow returns the chart series of one motor, or nil when the chart
// does not apply to its category.
func trendRow(stores *store.Stores, m store.MotorEquipment, kind format.TrendKind, plc *int, period format.Period) (format.Row, error) {
	columns, ok := format.TrendColumns(kind, m.Category)
	if !ok {
		return nil, nil
	}

	featurePLC := 0
	if plc != nil {
		featurePLC = *plc
	} else {
		current, err := stores.PLC.CurrentModel(m.EquipmentID)
		if err != nil {
			return nil, err
		}
		featurePLC = current
	}

	features, err := stores.Features.FeatureRange(store.FeatureQuery{
		Table:       m.Category.FeatureTable(),
		Columns:     columns,
		EquipmentID: m.EquipmentID,
		MotorNumber: m.Number,
		PLC:         featurePLC,
		Start:       period.Start,
		End:         &period.End,
	})
	if err != nil {
		return nil, err
	}

	row := format.Row{}
	for k, v := range format.MergeRows(features) {
		row[k] = v
	}
	row["part"] = format.PartLabel(m.EquipmentName, m.Number)
	row["name"] = format.MotorCode(m.Name)
	row["label"] = m.Category.String()
	return format.RenameKeys(row), nil
}

func handleTrendInit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operating, health := format.TrendInitKeys()
		respondWithJSON(w, http.StatusOK, map[string][]string{
			"operating": operating,
			"health":    health,
		})
	}
}
