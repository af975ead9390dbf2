package configsdatabase

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"deltaproje.app/configs"
	"deltaproje.app/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB yapılandırmaya göre PostgreSQL veya SQLite bağlantısını açar.
// Depolama motoru seçimi yalnızca burada yapılır; çekirdek kod motor bağımsızdır.
func InitDB(cfg configs.Config) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var err error
	if cfg.IsPostgres() {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	} else {
		if dirErr := ensureDirForSQLite(cfg.DatabaseURL); dirErr != nil {
			configslog.Log.Fatal("SQLite dizini oluşturulamadı", zap.Error(dirErr))
		}
		db, err = gorm.Open(sqlite.Open(cfg.DatabaseURL), gormCfg)
	}
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı açılamadı", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	configslog.SLog.Info("Veritabanı bağlantısı hazır.")
}

// GetDB açık bağlantıyı döndürür. Yalnızca süreç başlangıcında kullanılmalı;
// katmanlar *gorm.DB'yi constructor parametresi olarak alır.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("Veritabanı başlatılmadan GetDB çağrıldı")
	}
	return db
}

// CloseDB bağlantıyı kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}

// ensureDirForSQLite SQLite dosyası için üst dizini oluşturur.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
