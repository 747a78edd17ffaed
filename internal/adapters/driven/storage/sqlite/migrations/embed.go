// Package migrations embeds the versioned SQL schema of the document store.
package migrations

import "embed"

// FS contains all NNN_name.{up,down}.sql files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
