package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"deltaproje.app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter uint64

// SetupTestDB her test için yalıtılmış, bellek içi bir SQLite veritabanı
// açar ve tabloları hazırlar. Bağlantı test bitiminde kapatılır.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Paylaşımlı önbellekli benzersiz DSN; aynı testin açtığı ek
	// bağlantılar aynı veritabanını görür.
	name := fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), atomic.AddUint64(&dbCounter, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.FormSequence{},
		&models.TaskRequest{},
	)
	if err != nil {
		t.Fatalf("test tabloları migrate edilemedi: %v", err)
	}
	if err := db.Create(&models.FormSequence{ID: 1, LastNo: 0}).Error; err != nil {
		t.Fatalf("form_sequence satırı oluşturulamadı: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SeedUser testler için kullanıcı açar; parola verilirse karması saklanır.
func SeedUser(t *testing.T, db *gorm.DB, fullName, role, password string) *models.User {
	t.Helper()

	user := &models.User{
		FullName: fullName,
		Role:     role,
		IsActive: true,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("test parola karması üretilemedi: %v", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("test kullanıcısı oluşturulamadı: %v", err)
	}
	return user
}
