// Package sql holds the database migrations
// Files follow the golang-migrate naming scheme, <version>_<name>.<up|down>.sql
package sql

import "embed"

// FS contains the migrations
//
//go:embed *.sql
var FS embed.FS
