package endpoints

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/version"
)

//go:embed openapi.yaml
var openAPIDocument []byte

//go:embed static
var staticFiles embed.FS

// swaggerAssets is where the Swagger UI bundle is loaded from.
const swaggerAssets = "https://unpkg.com/swagger-ui-dist@5"

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}} - Swagger UI</title>
    <link rel="icon" href="/static/favicon.svg">
    <link rel="stylesheet" href="{{.Assets}}/swagger-ui.css">
    <link rel="stylesheet" href="/static/docs.css">
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="{{.Assets}}/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>
`))

// RegisterDocsEndpoints serves the OpenAPI document, its Swagger UI page
// and the embedded static assets.
func RegisterDocsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/openapi.yaml", handleOpenAPI()).Methods("GET")
	s.Router.HandleFunc("/docs", handleDocs()).Methods("GET")

	staticFS, _ := fs.Sub(staticFiles, "static")
	s.Router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	)
}

func handleOpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIDocument)
	}
}

func handleDocs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = docsPage.Execute(w, map[string]string{
			"Title":  version.Name,
			"Assets": swaggerAssets,
		})
	}
}
