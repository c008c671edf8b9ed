package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/onepredict/lges-query-server/pkg/audit"
	"github.com/onepredict/lges-query-server/pkg/format"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

func registerPLCEndpoints(r *mux.Router, s *server.Server) {
	r.HandleFunc("/mapping-memory", handleMemoryMappings(s.Stores.PLC)).Methods("GET")
	r.HandleFunc("/plc-model", handleModels(s.Stores.PLC)).Methods("GET")

	// POST /setting-client/plc - values read from the PLC, keyed
	// "<source>.<equipment name>.<memory mapping name>"
	r.HandleFunc("/plc", handleInsertPLCLog(s.Stores, s.Now)).Methods("POST")
}

func handleMemoryMappings(plcStore store.PLCStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := plcStore.MemoryMappings()
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

func handleModels(plcStore store.PLCStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := plcStore.Models()
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

// plcValue renders a JSON value the way it is stored in the log table.
func plcValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func handleInsertPLCLog(stores *store.Stores, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := decodeBody(r, &body); err != nil {
			respondWithFailure(w, err)
			return
		}
		rawTimestamp, ok := body["timestamp"]
		if !ok {
			respondWithFailure(w, fmt.Errorf("%w: missing timestamp", format.ErrArgument))
			return
		}
		timestamp, err := format.ParseTime(plcValue(rawTimestamp), now().Location())
		if err != nil {
			respondWithFailure(w, err)
			return
		}
		delete(body, "timestamp")

		inserted, skipped, err := insertPLCLog(stores, timestamp, body)
		event := audit.PLCLogEvent{
			ClientIP:  clientIP(r),
			Timestamp: timestamp.Format(time.RFC3339),
			Inserted:  inserted,
			Skipped:   skipped,
			Success:   err == nil,
		}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		audit.Log(event)

		if err != nil {
			respondWithFailure(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

// insertPLCLog writes every value whose key names a memory mapping of a
// known equipment. Other keys are counted as skipped.
func insertPLCLog(stores *store.Stores, timestamp time.Time, values map[string]json.RawMessage) (inserted, skipped int, err error) {
	mappings := make(map[string][]model.MemoryMapping)

	for _, key := range format.SortedKeys(values) {
		parts := strings.Split(key, ".")
		if len(parts) != 3 {
			skipped++
			continue
		}
		equipmentName, name := parts[1], parts[2]

		list, ok := mappings[equipmentName]
		if !ok {
			equipment, err := stores.Services.EquipmentByName(equipmentName)
			if errors.Is(err, store.ErrNotFound) {
				mappings[equipmentName] = nil
				skipped++
				continue
			}
			if err != nil {
				return inserted, skipped, err
			}
			list, err = stores.PLC.EquipmentMappings(equipment.LineID, equipment.ID)
			if err != nil {
				return inserted, skipped, err
			}
			mappings[equipmentName] = list
		}

		matched := false
		for _, mm := range list {
			if mm.Name != name {
				continue
			}
			if err := stores.PLC.InsertLog(timestamp, mm.ID, plcValue(values[key])); err != nil {
				return inserted, skipped, err
			}
			inserted++
			matched = true
		}
		if !matched {
			skipped++
		}
	}
	return inserted, skipped, nil
}
