package repositories

import (
	"context"
	"errors"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindAll(ctx context.Context, includeInactive bool) ([]models.User, error)
	FindByRole(ctx context.Context, role string) ([]models.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	Delete(ctx context.Context, id uint) error
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

// Create yeni kullanıcı kaydı ekler.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("boş kullanıcı kaydedilemez")
	}
	if err := r.getDB(ctx).Create(user).Error; err != nil {
		configslog.Log.Error("UserRepository.Create: DB hatası", zap.Error(err))
		return err
	}
	return nil
}

// FindByID verilen ID'ye sahip kullanıcıyı döndürür.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.getDB(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindAll kullanıcıları ada göre sıralı döndürür; includeInactive false ise
// yalnızca aktif kullanıcılar gelir.
func (r *UserRepository) FindAll(ctx context.Context, includeInactive bool) ([]models.User, error) {
	query := r.getDB(ctx).Order("full_name")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		configslog.Log.Error("UserRepository.FindAll: DB hatası", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// FindByRole verilen roldeki aktif kullanıcıları ada göre sıralı döndürür.
func (r *UserRepository) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	err := r.getDB(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Order("full_name").
		Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindByRole: DB hatası", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	return users, nil
}

// UpdatePasswordHash kullanıcının parola özetini günceller.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	result := r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		configslog.Log.Error("UserRepository.UpdatePasswordHash: DB hatası", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete kullanıcıyı pasifleştirir. Kayıt fiziksel olarak silinmez;
// formlardaki atama referansları geçerli kalır.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		configslog.Log.Error("UserRepository.Delete: DB hatası", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

var _ IUserRepository = (*UserRepository)(nil)
