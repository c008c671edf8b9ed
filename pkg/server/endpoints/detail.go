package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

const partPattern = "{part:pc|nc|lami|fc}"

func RegisterDetailEndpoints(s *server.Server) {
	r := s.API.PathPrefix("/data/detail").Subrouter()

	// GET /data/detail/{part}-init?equipment_id - chart layout of a part page
	r.HandleFunc("/"+partPattern+"-init", handleDetailInit(s.Stores)).Methods("GET")

	// GET /data/detail/{part}?equipment_id&plc&start&end - feature history of a part
	r.HandleFunc("/"+partPattern, handleDetail(s.Stores, s.Now)).Methods("GET")
}

// partEquipment resolves the part in the URL and the equipment it is viewed on.
func partEquipment(services store.ServiceStore, r *http.Request) (format.Part, *model.Equipment, error) {
	part, err := format.ParsePart(mux.Vars(r)["part"])
	if err != nil {
		return "", nil, err
	}
	equipmentID, err := intParam(r, "equipment_id")
	if err != nil {
		return "", nil, err
	}
	equipment, err := services.Equipment(equipmentID)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, format.NewHTTPError(http.StatusNotFound, "%d번 호기가 존재하지 않습니다.", equipmentID)
	}
	if err != nil {
		return "", nil, err
	}
	return part, equipment, nil
}

func byDisplayNum(a, b format.Row) bool {
	x, _ := a["display_num"].(int)
	y, _ := b["display_num"].(int)
	return x < y
}

func handleDetail(stores *store.Stores, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		part, equipment, err := partEquipment(stores.Services, r)
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		current := now()
		plc, err := optionalIntParam(r, "plc")
		if err != nil {
			respondWithFailure(w, err)
			return
		}
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

		numbers := format.PartMotors(equipment.Name, part)
		rows, err := buildMotorRows(r.Context(), numbers, func(_ context.Context, n int) (format.Row, error) {
			return detailRow(stores, equipment.ID, n, plc, period)
		})
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if part == format.PartFinalCutting {
			rows.sortBy(byDisplayNum)
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

// detailRow merges the feature rows of a motor in period into one row of
// lists. Columns that hold a single value keep the one of the last row.
func detailRow(stores *store.Stores, equipmentID, number int, plc *int, period format.Period) (format.Row, error) {
	setting, err := loadMotorSetting(stores, equipmentID, number)
	if err != nil {
		return nil, err
	}
	category := setting.Motor.Category
	featurePLC := setting.CurrentPLC
	if plc != nil {
		featurePLC = *plc
	}

	columns := format.DetailColumns(category)
	features, err := stores.Features.FeatureRange(store.FeatureQuery{
		Table:       category.FeatureTable(),
		Columns:     columns,
		EquipmentID: equipmentID,
		MotorNumber: number,
		PLC:         featurePLC,
		Start:       period.Start,
		End:         &period.End,
	})
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, format.NewHTTPError(http.StatusNotFound, "해당 날짜 구간에 feature가 존재하지 않습니다.")
	}

	row := format.Row{}
	for k, v := range format.MergeRows(features) {
		row[k] = v
	}
	last := features[len(features)-1]
	for _, c := range format.ScalarColumns(columns) {
		row[c] = last[c]
	}

	thresholds, err := format.ExtractThreshold(category, setting.Thresholds)
	if err != nil {
		return nil, err
	}
	for k, v := range thresholds {
		row[k] = v
	}

	code := format.MotorCode(setting.Motor.Name)
	row["category"] = category.String()
	row["name"] = code

	out := format.RenameKeys(row)
	out["display_num"] = format.DisplayNum(code)
	return out, nil
}

func handleDetailInit(stores *store.Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		part, equipment, err := partEquipment(stores.Services, r)
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		current, err := stores.PLC.CurrentModel(equipment.ID)
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		numbers := format.PartMotors(equipment.Name, part)
		rows, err := buildMotorRows(r.Context(), numbers, func(_ context.Context, n int) (format.Row, error) {
			motor, err := stores.Services.Motor(equipment.ID, n)
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			code := format.MotorCode(motor.Name)
			operating, health := format.DetailInitKeys(motor.Category)
			return format.Row{
				"equipment_id": equipment.ID,
				"motor_number": n,
				"name":         code,
				"plc":          current,
				"category":     motor.Category.String(),
				"operating":    operating,
				"health":       health,
				"display_num":  format.DisplayNum(code),
			}, nil
		})
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if part == format.PartFinalCutting {
			rows.sortBy(byDisplayNum)
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}
