// Package queryserver holds files embedded from the repository root.
package queryserver

import _ "embed"

// Changelog is the release history in Keep a Changelog format.
//
//go:embed CHANGELOG.md
var Changelog []byte
