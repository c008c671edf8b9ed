// Package version reports the server version and reads the release
// history from the embedded changelog.
//
// The version is taken from the first released entry of CHANGELOG.md
// unless the build sets it:
//
//	go build -ldflags "-X github.com/onepredict/lges-query-server/pkg/version.Version=1.4.1"
package version
