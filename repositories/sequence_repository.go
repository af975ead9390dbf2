package repositories

import (
	"context"
	"errors"
	"fmt"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormNoWidth form numaralarının sıfır dolgu genişliği.
const FormNoWidth = 5

// ISequenceRepository form numarası sayacı işlemleri için arayüz.
type ISequenceRepository interface {
	NextFormNo(ctx context.Context) (string, error)
	AdvanceTo(ctx context.Context, n int64) error
}

// SequenceRepository ISequenceRepository arayüzünü uygular. Sayaç tek
// satırlık form_sequence tablosunda tutulur; artırma işlemi tek UPDATE
// ifadesiyle yapılır ki eşzamanlı çağrılar aynı değeri üretemesin.
type SequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository yeni bir SequenceRepository örneği oluşturur.
func NewSequenceRepository(db *gorm.DB) ISequenceRepository {
	return &SequenceRepository{db: db}
}

// NextFormNo sayacı bir artırır ve yeni değeri 5 haneye sıfır dolgulu
// döndürür. Artırma ve geri okuma tek transaction içindedir.
func (r *SequenceRepository) NextFormNo(ctx context.Context) (string, error) {
	var next int64
	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.FormSequence{}).
			Where("id = ?", 1).
			Update("last_no", gorm.Expr("last_no + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			seq := models.FormSequence{ID: 1, LastNo: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
			next = seq.LastNo
			return nil
		}

		var seq models.FormSequence
		if err := tx.First(&seq, 1).Error; err != nil {
			return err
		}
		next = seq.LastNo
		return nil
	})
	if err != nil {
		configslog.Log.Error("SequenceRepository.NextFormNo: DB hatası", zap.Error(err))
		return "", err
	}
	return FormatFormNo(next), nil
}

// AdvanceTo sayacı en az n değerine yükseltir. Koşullu tek UPDATE olduğu
// için eşzamanlı yükseltmelerde kayıp güncelleme oluşmaz; sayaç zaten
// ileride ise hiçbir şey yapmaz.
func (r *SequenceRepository) AdvanceTo(ctx context.Context, n int64) error {
	if n <= 0 {
		return nil
	}
	db := dbFromContext(ctx, r.db)
	result := db.Model(&models.FormSequence{}).
		Where("id = ? AND last_no < ?", 1, n).
		Update("last_no", n)
	if result.Error != nil {
		configslog.Log.Error("SequenceRepository.AdvanceTo: DB hatası", zap.Int64("n", n), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Satır ya zaten ileride ya da hiç yok; yoksa oluştur.
		var seq models.FormSequence
		err := db.First(&seq, 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&models.FormSequence{ID: 1, LastNo: n}).Error
		}
		return err
	}
	return nil
}

// FormatFormNo sayaç değerini sıfır dolgulu form numarasına çevirir.
// Değer dolgu genişliğini aşarsa olduğu gibi yazılır.
func FormatFormNo(n int64) string {
	return fmt.Sprintf("%0*d", FormNoWidth, n)
}

var _ ISequenceRepository = (*SequenceRepository)(nil)
