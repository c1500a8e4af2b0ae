// Package migrations embute os scripts goose do schema PostgreSQL.
package migrations

import "embed"

// FS contém os arquivos *.sql aplicados por goose (cmd/migrate e AUTO_MIGRATE).
//
//go:embed *.sql
var FS embed.FS
