package services

import (
	"context"
	"errors"
	"strings"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"
	"deltaproje.app/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserServiceError kullanıcı servisi hata türü.
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound       UserServiceError = "Kullanıcı bulunamadı"
	ErrUserValidation     UserServiceError = "Kullanıcı doğrulaması başarısız"
	ErrUserWeakPassword   UserServiceError = "Parola en az 8 karakter olmalıdır"
	ErrUserWrongPassword  UserServiceError = "Parola hatalı"
	ErrUserInactive       UserServiceError = "Kullanıcı pasif durumda"
	ErrUserSaveFailed     UserServiceError = "Kullanıcı kaydedilemedi"
	ErrUserPasswordNeeded UserServiceError = "Bu rol için parola zorunludur"
)

// minPasswordLength parola gerektiren roller için alt sınır.
const minPasswordLength = 8

// UserInput yeni kullanıcı oluşturma verisi.
type UserInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// IUserService kullanıcı işlemleri için arayüz.
type IUserService interface {
	CreateUser(ctx context.Context, in UserInput) (*models.User, error)
	Authenticate(ctx context.Context, userID uint, password string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, includeInactive bool) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]models.User, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
	DeleteUser(ctx context.Context, id uint) error
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService(db *gorm.DB) IUserService {
	return &UserService{repo: repositories.NewUserRepository(db)}
}

// CreateUser kullanıcıyı doğrulayıp kaydeder. Parola yalnızca yönetici ve
// atayan roller için zorunludur; çalışan rolü parolasız açılabilir.
func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	role := strings.TrimSpace(in.Role)
	if fullName == "" || !models.IsValidRole(role) {
		return nil, ErrUserValidation
	}

	user := &models.User{
		FullName: fullName,
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     role,
		IsActive: true,
	}

	if user.RequiresPassword() {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Create(ctx, user); err != nil {
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("full_name", fullName), zap.Error(err))
		return nil, ErrUserSaveFailed
	}
	return user, nil
}

// Authenticate kullanıcıyı kimlikle bulur ve rolü gerektiriyorsa parolayı
// doğrular. Çalışan rolü parola istemez; pasif kullanıcı giriş yapamaz.
func (s *UserService) Authenticate(ctx context.Context, userID uint, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if user.RequiresPassword() {
		if user.PasswordHash == "" {
			return nil, ErrUserPasswordNeeded
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, ErrUserWrongPassword
		}
	}
	return user, nil
}

// GetUser kullanıcıyı kimlikle getirir.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers kullanıcıları ada göre sıralı listeler.
func (s *UserService) ListUsers(ctx context.Context, includeInactive bool) ([]models.User, error) {
	return s.repo.FindAll(ctx, includeInactive)
}

// ListUsersByRole verilen roldeki aktif kullanıcıları listeler.
func (s *UserService) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	if !models.IsValidRole(role) {
		return nil, ErrUserValidation
	}
	return s.repo.FindByRole(ctx, role)
}

// UpdatePassword kullanıcının parolasını yeniden karma değerle değiştirir.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		configslog.Log.Error("Parola güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return ErrUserSaveFailed
	}
	return nil
}

// DeleteUser kullanıcıyı pasifleştirerek siler; geçmiş formlardaki atama
// referansları bozulmaz.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrUserWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
