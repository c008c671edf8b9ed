package endpoints

import (
	"net/http"
	"time"

	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

func RegisterFDCEndpoints(s *server.Server) {
	r := s.API.PathPrefix("/fdc").Subrouter()

	// GET /fdc/fdc-feature?equipment_id&motor_number&acq_time - one feature row
	r.HandleFunc("/fdc-feature", handleFDCFeature(s.Stores, s.Now)).Methods("GET")
}

func handleFDCFeature(stores *store.Stores, now func() time.Time) http.HandlerFunc {
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
		acqTime, err := timeParam(r, "acq_time", now().Location())
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		motor, err := stores.Services.Motor(equipmentID, number)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		rows, err := stores.Features.FeatureAt(motor.Category, equipmentID, number, acqTime)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if len(rows) == 0 {
			respondWithFailure(w, format.NewHTTPError(http.StatusNotFound, "%s", format.ErrEmptyQueryResult.Error()))
			return
		}
		respondWithJSON(w, http.StatusOK, rows[0])
	}
}
