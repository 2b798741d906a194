package migrations

import (
	"context"

	"menulink/internal/database"
	"menulink/internal/logger"

	"gorm.io/gorm"
)

// RunMigrations creates or updates the order log tables. Existing rows are
// kept.
func RunMigrations(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	log.Info(ctx).Msg("running database migrations")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	log.Info(ctx).Msg("database migrations completed")
	return nil
}

// Reset drops and recreates the order log tables.
func Reset(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	log.Warn(ctx).Msg("dropping order tables")
	if err := db.Migrator().DropTable("order_items", "orders"); err != nil {
		return err
	}
	return RunMigrations(ctx, db, log)
}
