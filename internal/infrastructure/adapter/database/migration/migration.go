package migration

import (
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger) *MigrationManager {
	return &MigrationManager{
		db:     db,
		logger: logger,
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", nil)

	if err := m.autoMigrateModels(); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", nil)
	return nil
}

// autoMigrateModels auto-migrates database models
func (m *MigrationManager) autoMigrateModels() error {
	m.logger.Info("Auto-migrating database models", nil)

	return m.db.AutoMigrate(
		&model.User{},
		&model.Auction{},
		&model.Transaction{},
		&model.ConnectAccount{},
	)
}

// createIndexes creates indexes that AutoMigrate cannot express
func (m *MigrationManager) createIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	// At most one completed payment per auction, enforced at the storage
	// layer regardless of application-level checks
	if err := m.db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_auction_completed ON transactions (auction_id) WHERE status = 'completed'").Error; err != nil {
		return err
	}

	// Sweep scan paths
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_auctions_status_end_time ON auctions (status, end_time)").Error; err != nil {
		return err
	}
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_auctions_status_start_time ON auctions (status, start_time)").Error; err != nil {
		return err
	}

	return nil
}
