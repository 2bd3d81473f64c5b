// Package migrations embeds the SQL schema so migrate and app binaries run from any directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
