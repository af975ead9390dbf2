package migrations

import (
	"errors"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFormsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating forms & form_sequence tables...")
	err := db.AutoMigrate(&models.Form{}, &models.FormSequence{})
	if err != nil {
		configslog.Log.Error("Failed to migrate forms & form_sequence tables", zap.Error(err))
		return err
	}

	// Sayaç satırı tablo ile birlikte var edilir; artırma sorgusu satırın
	// hazır olduğuna güvenir.
	var seq models.FormSequence
	if err := db.First(&seq, 1).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Failed to check form_sequence row", zap.Error(err))
			return err
		}
		if err := db.Create(&models.FormSequence{ID: 1, LastNo: 0}).Error; err != nil {
			configslog.Log.Error("Failed to create form_sequence row", zap.Error(err))
			return err
		}
	}

	configslog.SLog.Info("Forms & form_sequence tables migrated successfully")
	return nil
}
