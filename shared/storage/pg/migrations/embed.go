package migrations

import "embed"

// FS contains the embedded goose migrations of the board database.
//
//go:embed *.sql
var FS embed.FS
