// Package db wraps pgxpool with startup retries, a readiness check,
// goose migrations over an embedded filesystem and a transaction helper.
//
// Configuration comes from the environment:
//
//	DATABASE_URL                - PostgreSQL connection URL (required)
//	DATABASE_MIGRATIONS_TABLE   - goose version table (default: schema_migrations)
//	DATABASE_MAX_OPEN_CONNS     - pool size (default: 10)
//	DATABASE_MIN_CONNS          - idle connections kept open (default: 2)
//	DATABASE_RETRY_ATTEMPTS     - connection attempts at startup (default: 3)
//	DATABASE_RETRY_INTERVAL     - base retry interval (default: 5s)
//
// Typical startup:
//
//	pool, err := db.Connect(ctx, cfg.DB)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, repository.Migrations, cfg.DB.MigrationsTable, log); err != nil {
//		return err
//	}
package db
