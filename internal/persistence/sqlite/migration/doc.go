// Package migration applies versioned SQL migrations to a SQLite database.
//
// Migration files are read from an fs.FS (typically an embed.FS) and follow
// the naming convention {version}_{description}.sql, e.g.
// "001_configurations.sql". Versions must be contiguous. Each migration runs
// in its own transaction together with its schema_migrations bookkeeping row,
// so a failed migration leaves no trace.
//
// Example usage:
//
//	runner := migration.NewRunner(db, migrationsFS, "migrations", logger)
//	if _, err := runner.Run(ctx); err != nil {
//		return err
//	}
package migration
