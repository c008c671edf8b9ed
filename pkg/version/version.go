package version

import (
	"sync"

	queryserver "github.com/onepredict/lges-query-server"
)

// Name is reported by the status endpoint.
const Name = "LGES Query Server"

// Version overrides the changelog version when set at link time.
var Version string

var (
	history     *History
	historyOnce sync.Once
)

// Changelog returns the embedded release history.
func Changelog() *History {
	historyOnce.Do(func() {
		history = Parse(Embedded())
	})
	return history
}

// Current returns the running version, "dev" when neither the build nor
// the changelog name one.
func Current() string {
	if Version != "" {
		return Version
	}
	if latest := Changelog().Latest(); latest != nil {
		return latest.Version
	}
	return "dev"
}

// Embedded returns CHANGELOG.md as built into the binary.
func Embedded() []byte {
	return queryserver.Changelog
}
