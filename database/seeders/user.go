package seeders

import (
	"errors"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultUser kurulumda açılan hazır hesap; parolasız girdi parola
// gerektirmeyen role aittir.
type defaultUser struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
}

var defaultUsers = []defaultUser{
	{FullName: "Admin User", Email: "admin@deltaproje.com", Password: "Delta2025!", Role: models.RoleAdmin},
	{FullName: "Ahmet Yönetici", Email: "yonetici@deltaproje.com", Password: "Yonetici123!", Role: models.RoleAtayan},
	{FullName: "Mehmet Çalışan", Email: "calisan1@deltaproje.com", Phone: "5551234567", Role: models.RoleCalisan},
	{FullName: "Ayşe Çalışan", Email: "calisan2@deltaproje.com", Phone: "5559876543", Role: models.RoleCalisan},
	{FullName: "Ali Çalışan", Email: "calisan3@deltaproje.com", Phone: "5555555555", Role: models.RoleCalisan},
}

// SeedDefaultUsers hazır hesapları ad+eposta çiftine göre bir kez açar.
func SeedDefaultUsers(db *gorm.DB) error {
	var createdCount int64
	var errorOccurred bool

	configslog.SLog.Info("Varsayılan kullanıcılar seed işlemi başlıyor...")

	for _, seed := range defaultUsers {
		var existing models.User
		result := db.Where("full_name = ? AND email = ?", seed.FullName, seed.Email).First(&existing)

		if result.Error == nil {
			configslog.SLog.Debugf("Kullanıcı '%s' zaten mevcut, oluşturma atlanıyor.", seed.FullName)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Kullanıcı kontrol edilirken veritabanı hatası",
				zap.String("full_name", seed.FullName),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		user := models.User{
			FullName: seed.FullName,
			Email:    seed.Email,
			Phone:    seed.Phone,
			Role:     seed.Role,
			IsActive: true,
		}
		if seed.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
			if err != nil {
				configslog.Log.Error("Parola karması üretilemedi",
					zap.String("full_name", seed.FullName),
					zap.Error(err),
				)
				errorOccurred = true
				continue
			}
			user.PasswordHash = string(hash)
		}

		configslog.SLog.Infof("Kullanıcı '%s' oluşturuluyor...", seed.FullName)
		if err := db.Create(&user).Error; err != nil {
			configslog.Log.Error("Kullanıcı oluşturulamadı",
				zap.String("full_name", seed.FullName),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni kullanıcı başarıyla seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm varsayılan kullanıcılar zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("varsayılan kullanıcılar seed edilirken en az bir hata oluştu")
	}

	configslog.SLog.Info("Varsayılan kullanıcılar seed işlemi başarıyla tamamlandı.")
	return nil
}
