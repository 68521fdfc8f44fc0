// Package migrations embeds the goose SQL migrations of the admin schema.
// The mission tracking schema is owned by the client service and is not migrated here.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
