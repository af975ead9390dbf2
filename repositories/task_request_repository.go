package repositories

import (
	"context"
	"errors"
	"time"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskRequestRow talep kaydını, ilgili kullanıcı adlarıyla birlikte taşır.
type TaskRequestRow struct {
	models.TaskRequest
	RequestedByName string `json:"requested_by_name"`
	AssignedToName  string `json:"assigned_to_name"`
}

// ITaskRequestRepository görev talebi veritabanı işlemleri için arayüz.
type ITaskRequestRepository interface {
	Create(ctx context.Context, request *models.TaskRequest) error
	FindByID(ctx context.Context, id uint) (*TaskRequestRow, error)
	FindAll(ctx context.Context, status string) ([]TaskRequestRow, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// TaskRequestRepository ITaskRequestRepository arayüzünü uygular.
type TaskRequestRepository struct {
	db *gorm.DB
}

// NewTaskRequestRepository yeni bir TaskRequestRepository örneği oluşturur.
func NewTaskRequestRepository(db *gorm.DB) ITaskRequestRepository {
	return &TaskRequestRepository{db: db}
}

const taskRequestSelect = "task_requests.*, req.full_name AS requested_by_name, ass.full_name AS assigned_to_name"

func (r *TaskRequestRepository) joined(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&models.TaskRequest{}).
		Select(taskRequestSelect).
		Joins("LEFT JOIN users AS req ON req.id = task_requests.requested_by_user_id").
		Joins("LEFT JOIN users AS ass ON ass.id = task_requests.assigned_to_user_id")
}

// Create yeni talep kaydı ekler.
func (r *TaskRequestRepository) Create(ctx context.Context, request *models.TaskRequest) error {
	if request == nil {
		return errors.New("boş talep kaydedilemez")
	}
	if err := dbFromContext(ctx, r.db).Create(request).Error; err != nil {
		configslog.Log.Error("TaskRequestRepository.Create: DB hatası", zap.Error(err))
		return err
	}
	return nil
}

// FindByID talebi, talep eden ve atanan kullanıcı adlarıyla döndürür.
func (r *TaskRequestRepository) FindByID(ctx context.Context, id uint) (*TaskRequestRow, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var row TaskRequestRow
	err := r.joined(ctx).Where("task_requests.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("TaskRequestRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &row, nil
}

// FindAll talepleri en yeniden eskiye sıralı döndürür; status boş değilse
// yalnızca o durumdakiler gelir.
func (r *TaskRequestRepository) FindAll(ctx context.Context, status string) ([]TaskRequestRow, error) {
	query := r.joined(ctx)
	if status != "" {
		query = query.Where("task_requests.status = ?", status)
	}
	var rows []TaskRequestRow
	err := query.Order("task_requests.created_at DESC").Find(&rows).Error
	if err != nil {
		configslog.Log.Error("TaskRequestRepository.FindAll: DB hatası", zap.String("status", status), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// UpdateFields verilen alanları günceller ve updated_at'i tazeler.
func (r *TaskRequestRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	result := dbFromContext(ctx, r.db).Model(&models.TaskRequest{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		configslog.Log.Error("TaskRequestRepository.UpdateFields: DB hatası", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus verilen durumdaki talep sayısını döndürür.
func (r *TaskRequestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.TaskRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("TaskRequestRepository.CountByStatus: DB hatası", zap.String("status", status), zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ ITaskRequestRepository = (*TaskRequestRepository)(nil)
