package endpoints

import (
	"net/http"

	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
	"github.com/onepredict/lges-query-server/pkg/version"
)

// StatusResponse is returned by GET /
type StatusResponse struct {
	Name      string          `json:"name"`
	Version   string          `json:"version"`
	Status    string          `json:"status"`
	Databases map[string]bool `json:"databases"`
	Error     string          `json:"error,omitempty"`
}

func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus(s.Stores.Health)).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{
			Name:    version.Name,
			Version: version.Current(),
			Status:  "ok",
		}

		code := http.StatusOK
		if err := health.CheckConnectivity(); err != nil {
			code = http.StatusServiceUnavailable
			resp.Status = "unavailable"
			resp.Error = err.Error()
		}
		resp.Databases = health.Databases()

		respondWithJSON(w, code, resp)
	}
}
