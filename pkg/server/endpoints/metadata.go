package endpoints

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/objectstore"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// Raw waveforms are recorded as u, v and w phases of one acquisition.
const phasesPerAcquisition = 3

// metadataRMS is a metadata row with the RMS of its trigger.
type metadataRMS struct {
	model.Metadata
	RMSU float64 `json:"rms_u"`
	RMSV float64 `json:"rms_v"`
	RMSW float64 `json:"rms_w"`
}

// rawData is a decoded waveform with the motor it was recorded on.
type rawData struct {
	Current       []float64 `json:"current"`
	EquipmentName string    `json:"equipment_name"`
	EquipmentID   int       `json:"equipment_id"`
	Number        int       `json:"number"`
	Name          string    `json:"name"`
	Channel       string    `json:"channel"`
}

func registerMetadataEndpoints(r *mux.Router, s *server.Server) {
	r.HandleFunc("/metadata", handleMetadata(s.Stores.Metadata, s.Now)).Methods("GET")
	r.HandleFunc("/metadata-rms", handleMetadataRMS(s.Stores.Metadata, s.Stores.Features, s.Now)).Methods("GET")
	r.HandleFunc("/raw-data", handleRawData(s.Stores, s.Objects, s.Now)).Methods("GET")
}

// metadataQuery reads equipment_id, number, start and end, all required.
func metadataQuery(r *http.Request, loc *time.Location) (equipmentID, number int, start, end time.Time, err error) {
	if equipmentID, err = intParam(r, "equipment_id"); err != nil {
		return
	}
	if number, err = intParam(r, "number"); err != nil {
		return
	}
	if start, err = timeParam(r, "start", loc); err != nil {
		return
	}
	end, err = timeParam(r, "end", loc)
	return
}

func handleMetadata(metadata store.MetadataStore, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentID, number, start, end, err := metadataQuery(r, now().Location())
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		rows, err := metadata.Range(equipmentID, number, start, end)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if rows == nil {
			rows = []model.Metadata{}
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

func handleMetadataRMS(metadata store.MetadataStore, features store.FeatureStore, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentID, number, start, end, err := metadataQuery(r, now().Location())
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		rows, err := metadata.Range(equipmentID, number, start, end)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		triggers, err := features.TriggerRange(equipmentID, number, start, end)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, matchTriggers(rows, triggers))
	}
}

// matchTriggers pairs every acquisition, three metadata rows most recent
// first, with the trigger at the same position. The u phase row of an
// acquisition whose time matches its trigger carries the trigger RMS;
// every other RMS is zero.
func matchTriggers(rows []model.Metadata, triggers []model.Trigger) []metadataRMS {
	out := make([]metadataRMS, len(rows))
	for i, row := range rows {
		out[i] = metadataRMS{Metadata: row}
	}

	for chunk := 0; chunk*phasesPerAcquisition < len(out) && chunk < len(triggers); chunk++ {
		first := chunk * phasesPerAcquisition
		last := min(first+phasesPerAcquisition, len(out))
		trigger := triggers[chunk]
		if !out[first].AcqTime.Equal(trigger.AcqTime) {
			continue
		}
		for i := first; i < last; i++ {
			if out[i].Phase == "u" {
				out[i].RMSU = roundTo(trigger.RMSU, 6)
			}
		}
	}
	return out
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// handleRawData serves a waveform from the object store and reconciles
// the metadata table with it: rows of a missing object are removed and a
// stored object without a row gets one.
func handleRawData(stores *store.Stores, objects objectstore.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			respondWithFailure(w, format.NewHTTPError(http.StatusUnprocessableEntity, "missing query parameter path"))
			return
		}
		raw, err := objectstore.ParseRawPath(path, now().Location())
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		key := store.MetadataKey{
			LineID:      raw.LineID,
			EquipmentID: raw.EquipmentID,
			MotorNumber: raw.MotorNumber,
			Phase:       raw.Phase,
		}

		data, err := objects.Get(r.Context(), path)
		if errors.Is(err, objectstore.ErrNoSuchKey) {
			removed, derr := stores.Metadata.Delete(key)
			if derr != nil {
				respondWithFailure(w, derr)
				return
			}
			if removed == 0 {
				respondWithError(w, http.StatusNotFound, "Data not found in minio and metadata RDBMS")
				return
			}
			respondWithError(w, http.StatusNotFound, "Data was in Metadata RDBMS but not in minio")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Data not found")
			return
		}

		current, err := objectstore.Decode(data)
		if err != nil {
			respondWithFailure(w, err)
			return
		}

		existing, err := stores.Metadata.Find(key)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		if len(existing) == 0 {
			err := stores.Metadata.Insert(&model.Metadata{
				LineID:      raw.LineID,
				EquipmentID: raw.EquipmentID,
				MotorNumber: raw.MotorNumber,
				Phase:       raw.Phase,
				AcqTime:     raw.AcqTime,
				FilePath:    path,
			})
			if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
				respondWithFailure(w, err)
				return
			}
		}

		motor, err := stores.Services.Motor(raw.EquipmentID, raw.MotorNumber)
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rawData{
			Current:       current,
			EquipmentName: motor.EquipmentName,
			EquipmentID:   motor.EquipmentID,
			Number:        motor.Number,
			Name:          motor.Name,
			Channel:       raw.Phase,
		})
	}
}
