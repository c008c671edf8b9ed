package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/logging"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

var seoul = time.FixedZone("KST", 9*60*60)

// testNow is the clock of every test server.
var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, seoul)

// newTestServer returns a server with every endpoint registered on mock
// stores and an in-memory object store.
func newTestServer(t *testing.T) (*server.Server, *mockStores, *memoryObjects) {
	t.Helper()
	mocks := newMockStores()
	objects := newMemoryObjects()
	s := newServer(mocks.Stores(), objects)
	t.Cleanup(func() { mocks.AssertExpectations(t) })
	return s, mocks, objects
}

func newServer(stores *store.Stores, objects *memoryObjects) *server.Server {
	cfg := config.New()
	s := server.NewServer(cfg, stores, objects, logging.Discard(), "127.0.0.1", "0")
	s.Now = func() time.Time { return testNow }
	RegisterAll(s)
	return s
}

func serve(s *server.Server, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// errorMessage returns the message of an {"error": ...} body.
func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeJSON[map[string]interface{}](t, w)
	msg, ok := body["error"].(string)
	require.True(t, ok, "body: %s", w.Body.String())
	return msg
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, w.Code, "body: %s", w.Body.String())
}

// motorName builds a PLC axis name whose code is lges.motors.<motor>.
func motorName(motor string) string {
	return fmt.Sprintf("ESWA_Auto_A_LAM_13_1_LAM_ESC_%s_SVM_Axis_X", motor)
}

func intPtr(v int) *int { return &v }

// at matches a time argument equal to ts in any zone.
func at(ts time.Time) interface{} {
	return mock.MatchedBy(func(v time.Time) bool { return v.Equal(ts) })
}
