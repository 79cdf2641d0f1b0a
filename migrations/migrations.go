// Package migrations embeds the SQL schema migrations for every supported database driver.
//
// Each driver has its own directory (postgresql, mysql, sqlite) following the
// golang-migrate naming convention: {version}_{title}.{up|down}.sql.
package migrations

import "embed"

// FS holds the migration files for all drivers.
//
//go:embed postgresql/*.sql mysql/*.sql sqlite/*.sql
var FS embed.FS
