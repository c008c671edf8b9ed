package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/onepredict/lges-query-server/pkg/objectstore"
	"github.com/onepredict/lges-query-server/pkg/server"
)

type insertObjectRequest struct {
	Data []float64 `json:"data"`
}

// RegisterTestEndpoints registers the object store load test endpoint.
func RegisterTestEndpoints(s *server.Server) {
	r := s.API.PathPrefix("/test").Subrouter()
	r.HandleFunc("/insert-minio", handleInsertObject(s.Objects, s.Now)).Methods("POST")
}

// handleInsertObject stores the samples as a compressed waveform named
// after the current unix time.
func handleInsertObject(objects objectstore.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body insertObjectRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithFailure(w, err)
			return
		}

		key := strconv.FormatInt(now().Unix(), 10) + ".zst"
		if err := objects.Put(r.Context(), key, objectstore.Encode(body.Data)); err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, map[string]string{"key": key})
	}
}
