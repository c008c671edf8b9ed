package endpoints

import (
	"github.com/onepredict/lges-query-server/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterDashboardEndpoints(srv)
	RegisterDetailEndpoints(srv)
	RegisterTrendEndpoints(srv)
	RegisterSettingClientEndpoints(srv)
	RegisterFDCEndpoints(srv)
	RegisterTestEndpoints(srv)

	RegisterStatusEndpoints(srv)
	RegisterDocsEndpoints(srv)
}
