// Package db embeds the SQL migrations of the five query server databases.
//
// Each database has its own directory under migrations/ and its own
// golang-migrate version table.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
