package migrations

import (
	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateTaskRequestsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating task_requests table...")
	err := db.AutoMigrate(&models.TaskRequest{})
	if err != nil {
		configslog.Log.Error("Failed to migrate task_requests table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Task_requests table migrated successfully")
	return nil
}
