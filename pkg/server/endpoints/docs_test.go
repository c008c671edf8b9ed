package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDocs(t *testing.T) {
	s, _, _ := newTestServer(t)

	t.Run("openapi document", func(t *testing.T) {
		w := serve(s, "GET", "/openapi.yaml", nil)
		requireStatus(t, w, http.StatusOK)
		assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

		var doc struct {
			OpenAPI string                 `yaml:"openapi"`
			Paths   map[string]interface{} `yaml:"paths"`
		}
		require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc.OpenAPI)
		for _, path := range []string{
			"/data/dashboard/",
			"/setting-client/parameter",
			"/fdc/fdc-feature",
		} {
			assert.Contains(t, doc.Paths, path)
		}
	})

	t.Run("swagger page", func(t *testing.T) {
		w := serve(s, "GET", "/docs", nil)
		requireStatus(t, w, http.StatusOK)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `url: "/openapi.yaml"`)
		assert.Contains(t, w.Body.String(), swaggerAssets+"/swagger-ui-bundle.js")
	})

	t.Run("static assets", func(t *testing.T) {
		w := serve(s, "GET", "/static/docs.css", nil)
		requireStatus(t, w, http.StatusOK)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/css")

		w = serve(s, "GET", "/static/missing.css", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
