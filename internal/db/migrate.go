package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies every pending .sql file in migrationsDir in lexical order.
// Each file runs in its own transaction and is recorded in schema_migrations,
// so a failed file leaves the database at the last completed version.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrationsDir string) error {
	if _, err := pool.Exec(ctx, `
    CREATE TABLE IF NOT EXISTS schema_migrations (
      version TEXT PRIMARY KEY,
      applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )
  `); err != nil {
		return err
	}

	done, err := appliedVersions(ctx, pool)
	if err != nil {
		return err
	}

	pending, err := pendingFiles(migrationsDir, done)
	if err != nil {
		return err
	}

	for _, file := range pending {
		if err := applyOne(ctx, pool, migrationsDir, file); err != nil {
			return err
		}
		slog.Info("migration applied", "version", strings.TrimSuffix(file, ".sql"))
	}
	return nil
}

func appliedVersions(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	rows, err := pool.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := map[string]bool{}
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		done[version] = true
	}
	return done, rows.Err()
}

func pendingFiles(migrationsDir string, done map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		if !done[strings.TrimSuffix(name, ".sql")] {
			pending = append(pending, name)
		}
	}
	sort.Strings(pending)
	return pending, nil
}

func applyOne(ctx context.Context, pool *pgxpool.Pool, migrationsDir, file string) error {
	version := strings.TrimSuffix(file, ".sql")
	script, err := os.ReadFile(filepath.Join(migrationsDir, file))
	if err != nil {
		return err
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(script)); err != nil {
		return fmt.Errorf("migration %s failed: %w", version, err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
