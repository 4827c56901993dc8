// Package migrations embeds the catalog, order and pickup hub schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
