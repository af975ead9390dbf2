package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"
	"deltaproje.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskRequestServiceError görev talebi servisi hata türü.
type TaskRequestServiceError string

func (e TaskRequestServiceError) Error() string { return string(e) }

const (
	ErrRequestNotFound          TaskRequestServiceError = "Görev talebi bulunamadı"
	ErrRequestValidation        TaskRequestServiceError = "Görev talebi doğrulaması başarısız"
	ErrRequestInvalidTransition TaskRequestServiceError = "Geçersiz talep durumu geçişi"
	ErrRequestSaveFailed        TaskRequestServiceError = "Görev talebi kaydedilemedi"
)

// TaskRequestInput yeni talep oluşturma verisi.
type TaskRequestInput struct {
	CustomerName       string `json:"customer_name"`
	CustomerPhone      string `json:"customer_phone"`
	CustomerEmail      string `json:"customer_email"`
	CustomerAddress    string `json:"customer_address"`
	RequestDescription string `json:"request_description"`
	Requirements       string `json:"requirements"`
	Urgency            string `json:"urgency"`
	RequestedByUserID  uint   `json:"requested_by_user_id"`
	Notes              string `json:"notes"`
}

// ITaskRequestService görev talebi işlemleri için arayüz.
type ITaskRequestService interface {
	CreateRequest(ctx context.Context, in TaskRequestInput) (*repositories.TaskRequestRow, error)
	GetRequest(ctx context.Context, id uint) (*repositories.TaskRequestRow, error)
	ListRequests(ctx context.Context, status string) ([]repositories.TaskRequestRow, error)
	UpdateStatus(ctx context.Context, id uint, status string, assignedToUserID *uint) error
	MarkConverted(ctx context.Context, id uint, formNo string) error
	UpdateNotes(ctx context.Context, id uint, notes string) error
	PendingCount(ctx context.Context) (int64, error)
}

// TaskRequestService ITaskRequestService arayüzünü uygular.
type TaskRequestService struct {
	repo repositories.ITaskRequestRepository
}

// NewTaskRequestService yeni bir TaskRequestService örneği oluşturur.
func NewTaskRequestService(db *gorm.DB) ITaskRequestService {
	return &TaskRequestService{repo: repositories.NewTaskRequestRepository(db)}
}

// CreateRequest zorunlu alanları doğrulayıp talebi beklemede durumunda
// açar. Boş aciliyet normale çekilir; tanınmayan aciliyet değeri sessizce
// düzeltilmez, doğrulama hatası döner.
func (s *TaskRequestService) CreateRequest(ctx context.Context, in TaskRequestInput) (*repositories.TaskRequestRow, error) {
	customerName := strings.TrimSpace(in.CustomerName)
	description := strings.TrimSpace(in.RequestDescription)
	if customerName == "" || description == "" || in.RequestedByUserID == 0 {
		return nil, ErrRequestValidation
	}

	urgency := strings.TrimSpace(in.Urgency)
	if urgency == "" {
		urgency = models.UrgencyNormal
	}
	if !models.IsValidUrgency(urgency) {
		return nil, ErrRequestValidation
	}

	request := &models.TaskRequest{
		CustomerName:       customerName,
		CustomerPhone:      strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:      strings.TrimSpace(in.CustomerEmail),
		CustomerAddress:    strings.TrimSpace(in.CustomerAddress),
		RequestDescription: description,
		Requirements:       strings.TrimSpace(in.Requirements),
		Urgency:            urgency,
		Status:             models.RequestStatusPending,
		RequestedByUserID:  in.RequestedByUserID,
		Notes:              strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Create(ctx, request); err != nil {
		configslog.Log.Error("Görev talebi oluşturulamadı", zap.Error(err))
		return nil, ErrRequestSaveFailed
	}
	return s.GetRequest(ctx, request.ID)
}

// GetRequest talebi ilişkili kullanıcı adlarıyla birlikte getirir.
func (s *TaskRequestService) GetRequest(ctx context.Context, id uint) (*repositories.TaskRequestRow, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return row, nil
}

// ListRequests talepleri en yeni önce listeler. Tanınmayan durum filtresi
// yok sayılır ve tüm talepler döner.
func (s *TaskRequestService) ListRequests(ctx context.Context, status string) ([]repositories.TaskRequestRow, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.IsValidRequestStatus(status) {
		status = ""
	}
	return s.repo.FindAll(ctx, status)
}

// UpdateStatus talebi geçiş kurallarına göre yeni duruma taşır.
// Dönüştürüldü durumu bu yoldan verilemez; MarkConverted kullanılmalıdır.
func (s *TaskRequestService) UpdateStatus(ctx context.Context, id uint, status string, assignedToUserID *uint) error {
	status = strings.TrimSpace(status)
	if !models.IsValidRequestStatus(status) || status == models.RequestStatusConverted {
		return ErrRequestInvalidTransition
	}

	row, err := s.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransitionRequestStatus(row.Status, status) {
		return ErrRequestInvalidTransition
	}

	updates := map[string]interface{}{"status": status}
	if assignedToUserID != nil {
		updates["assigned_to_user_id"] = *assignedToUserID
	}
	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRequestNotFound
		}
		configslog.Log.Error("Talep durumu güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return ErrRequestSaveFailed
	}
	return nil
}

// MarkConverted talebi verilen form numarasına bağlayarak dönüştürüldü
// durumuna alır; dönüştürme damgası yalnızca bir kez atılır.
func (s *TaskRequestService) MarkConverted(ctx context.Context, id uint, formNo string) error {
	formNo = strings.TrimSpace(formNo)
	if formNo == "" {
		return ErrRequestValidation
	}

	row, err := s.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransitionRequestStatus(row.Status, models.RequestStatusConverted) {
		return ErrRequestInvalidTransition
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":            models.RequestStatusConverted,
		"converted_form_no": formNo,
		"converted_at":      now,
	}
	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRequestNotFound
		}
		configslog.Log.Error("Talep dönüştürülemedi", zap.Uint("id", id), zap.Error(err))
		return ErrRequestSaveFailed
	}
	return nil
}

// UpdateNotes yalnızca not alanını günceller.
func (s *TaskRequestService) UpdateNotes(ctx context.Context, id uint, notes string) error {
	err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"notes": strings.TrimSpace(notes)})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrRequestNotFound
	}
	return err
}

// PendingCount beklemedeki talep sayısını döndürür.
func (s *TaskRequestService) PendingCount(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, models.RequestStatusPending)
}
