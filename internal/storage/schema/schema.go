package schema

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

// Migration is one versioned schema change. Down is optional; purge
// and rollup tables are cheap to drop and recreate.
type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

// Migrator applies versioned migrations against ClickHouse, tracking
// what ran in a migrations table so reruns are idempotent.
type Migrator struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func NewMigrator(conn clickhouse.Conn, logger *zap.Logger) *Migrator {
	return &Migrator{conn: conn, logger: logger}
}

// Apply runs every pending migration in version order. Already-applied
// versions are skipped; the first failure aborts the run.
func (m *Migrator) Apply(ctx context.Context, all []Migration) error {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(all))
	for _, migration := range all {
		if _, ok := applied[migration.Version]; ok {
			m.logger.Info("migration already applied",
				zap.Int("version", migration.Version),
				zap.String("description", migration.Description))
			continue
		}
		pending = append(pending, migration)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, migration := range pending {
		m.logger.Info("applying migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description))
		if err := m.apply(ctx, migration); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) ensureMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version Int32,
			description String,
			applied_at DateTime,
			PRIMARY KEY (version)
		) ENGINE = MergeTree()
	`
	if err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.conn.Query(ctx, "SELECT version, applied_at FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int32
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		applied[int(version)] = appliedAt
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	if err := m.conn.Exec(ctx, migration.Up); err != nil {
		return fmt.Errorf("applying migration %d: %w", migration.Version, err)
	}
	if err := m.conn.Exec(ctx, `
		INSERT INTO migrations (version, description, applied_at)
		VALUES (?, ?, now())
	`, int32(migration.Version), migration.Description); err != nil {
		return fmt.Errorf("recording migration %d: %w", migration.Version, err)
	}
	return nil
}

// Rollback reverses one migration and removes its record.
func (m *Migrator) Rollback(ctx context.Context, migration Migration) error {
	if migration.Down == "" {
		return fmt.Errorf("migration %d has no down statement", migration.Version)
	}
	if err := m.conn.Exec(ctx, migration.Down); err != nil {
		return fmt.Errorf("rolling back migration %d: %w", migration.Version, err)
	}
	if err := m.conn.Exec(ctx, "DELETE FROM migrations WHERE version = ?", int32(migration.Version)); err != nil {
		return fmt.Errorf("removing migration record %d: %w", migration.Version, err)
	}
	return nil
}
