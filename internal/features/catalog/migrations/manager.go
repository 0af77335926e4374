package migrations

import (
	"context"
	"fmt"

	"sitemap-service/internal/core"
)

const scope = "catalog"

// Manager handles catalog migrations
type Manager struct {
	migrationService *core.MigrationService
	logger           *core.Logger
}

// NewManager creates a new catalog migration manager
func NewManager(db *core.Database, logger *core.Logger) *Manager {
	return &Manager{
		migrationService: core.NewMigrationService(db, logger, scope),
		logger:           logger,
	}
}

// Migrations returns all catalog migrations in order
func (m *Manager) Migrations() []core.Migration {
	return []core.Migration{
		Migration001CreateVideosTable,
	}
}

// Migrate applies all pending catalog migrations
func (m *Manager) Migrate(ctx context.Context) error {
	if err := m.migrationService.InitMigrations(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	migrations := m.Migrations()
	m.logger.Info("Starting catalog migrations", "count", len(migrations))

	for _, migration := range migrations {
		if err := m.migrationService.ApplyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	return nil
}

// Rollback rolls back the last applied catalog migration
func (m *Manager) Rollback(ctx context.Context) error {
	if err := m.migrationService.InitMigrations(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	status, err := m.migrationService.GetMigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}
	if status.LastApplied == nil {
		return fmt.Errorf("no catalog migrations have been applied")
	}

	for _, migration := range m.Migrations() {
		if migration.Version == status.LastApplied.Version {
			return m.migrationService.RollbackMigration(ctx, migration)
		}
	}

	return fmt.Errorf("applied migration %d is unknown to this build", status.LastApplied.Version)
}

// Status returns the current migration status
func (m *Manager) Status(ctx context.Context) (*core.MigrationStatus, error) {
	return m.migrationService.GetMigrationStatus(ctx)
}

// GetPendingMigrations returns migrations that haven't been applied yet
func (m *Manager) GetPendingMigrations(ctx context.Context) ([]core.Migration, error) {
	applied, err := m.migrationService.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	appliedVersions := make(map[int]bool, len(applied))
	for _, migration := range applied {
		appliedVersions[migration.Version] = true
	}

	var pending []core.Migration
	for _, migration := range m.Migrations() {
		if !appliedVersions[migration.Version] {
			pending = append(pending, migration)
		}
	}

	return pending, nil
}
