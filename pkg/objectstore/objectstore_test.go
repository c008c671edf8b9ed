package objectstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	samples := []float64{0, 1.5, -2.25, 1024}
	data := Encode(samples)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, samples, got)

	_, err = Decode([]byte("not zstd"))
	assert.Error(t, err)
}

func TestKeyAndParseRawPath(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	acq := time.Date(2023, 4, 12, 4, 51, 37, 0, seoul)

	key := Key(1, 2, 3, acq, "u")
	assert.Equal(t, "/1/2/3/2023/04/12/045137_u.zst", key)

	p, err := ParseRawPath("/13/02/03/2023/04/12/045137_u.zst", seoul)
	require.NoError(t, err)
	assert.Equal(t, RawPath{LineID: 1, EquipmentID: 2, MotorNumber: 3, AcqTime: acq, Phase: "u"}, p)

	for _, bad := range []string{
		"13/02/03/2023/04/12/045137_u.zst",
		"/13/xx/03/2023/04/12/045137_u.zst",
		"/13/02/03/2023/04/12/045137u.zst",
		"/13/02/03/2023/14/12/045137_u.zst",
		"/13/02/03/2023/04/12",
	} {
		_, err := ParseRawPath(bad, seoul)
		assert.Error(t, err, bad)
	}
}

func newFakeS3(t *testing.T, objects map[string][]byte) *Minio {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := objects[r.URL.Path]
		switch {
		case r.Method == http.MethodGet && ok:
			w.Header().Set("Content-Length", strconv.Itoa(len(data)))
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.Header().Set("ETag", `"etag"`)
			_, _ = w.Write(data)
		case r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
				`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}))
	t.Cleanup(srv.Close)

	store, err := NewMinio(Options{
		Endpoint:        srv.URL,
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		Bucket:          "lami",
		Region:          "us-east-1",
	})
	require.NoError(t, err)
	return store
}

func TestMinioGet(t *testing.T) {
	payload := Encode([]float64{1, 2, 3})
	store := newFakeS3(t, map[string][]byte{"/lami/1/2/3/2023/04/12/045137_u.zst": payload})

	got, err := store.Get(context.Background(), "/1/2/3/2023/04/12/045137_u.zst")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = store.Get(context.Background(), "1/2/3/2023/04/12/000000_u.zst")
	assert.ErrorIs(t, err, ErrNoSuchKey)
}

func TestNewMinioRejectsBadEndpoint(t *testing.T) {
	_, err := NewMinio(Options{Endpoint: "::not a url", Bucket: "lami"})
	assert.Error(t, err)
}
