package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormSearchFilter arama sorgusunun normalize edilmiş filtreleri.
// PersonKey ve LocationKey, saklanan arama sütunlarıyla aynı biçimde
// normalize edilmiş olmalıdır; StartISO/EndISO ISO-8601 tarihlerdir.
type FormSearchFilter struct {
	PersonKey   string
	LocationKey string
	StartISO    string
	EndISO      string
}

// IFormRepository form veritabanı işlemleri için arayüz.
type IFormRepository interface {
	Upsert(ctx context.Context, form *models.Form) error
	FindByFormNo(ctx context.Context, formNo string) (*models.Form, error)
	Assign(ctx context.Context, formNo string, assignedTo, assignedBy *uint) (*time.Time, error)
	ListFormNumbers(ctx context.Context) ([]string, error)
	Search(ctx context.Context, filter FormSearchFilter) ([]models.Form, error)
	FindAllOrdered(ctx context.Context) ([]models.Form, error)
}

// FormRepository IFormRepository arayüzünü uygular.
type FormRepository struct {
	db *gorm.DB
}

// NewFormRepository yeni bir FormRepository örneği oluşturur.
func NewFormRepository(db *gorm.DB) IFormRepository {
	return &FormRepository{db: db}
}

// numericFormNoOrder form numarasını sayısal sıralar; numaralar sıfır
// dolgulu olsa da dolgu genişliğini aşabileceği için sözlüksel sıralama
// hiçbir listede kullanılmaz.
const numericFormNoOrder = "CAST(form_no AS INTEGER) DESC"

// formUpsertColumns çakışmada güncellenen sütunlar. form_no ve created_at
// bilinçli olarak dışarıda: numara değişmez, oluşturma zamanı korunur.
var formUpsertColumns = []string{
	"tarih", "tarih_iso", "dok_no", "rev_no",
	"avans", "taseron", "gorev_tanimi",
	"gorev_yeri", "gorev_yeri_lower", "gorev_il", "gorev_ilce", "gorev_firma",
	"gorev_tarih", "gorev_tarih_iso",
	"yapilan_isler", "gorev_ekleri", "harcama_bildirimleri",
	"yola_cikis_tarih", "yola_cikis_tarih_iso", "yola_cikis_saat",
	"donus_tarih", "donus_tarih_iso", "donus_saat",
	"calisma_baslangic_tarih", "calisma_baslangic_tarih_iso", "calisma_baslangic_saat",
	"calisma_bitis_tarih", "calisma_bitis_tarih_iso", "calisma_bitis_saat",
	"mola_suresi", "arac_plaka", "hazirlayan", "durum",
	"personel_1", "personel_2", "personel_3", "personel_4", "personel_5",
	"personel_search", "last_step",
	"assigned_to_user_id", "assigned_by_user_id", "assigned_at",
	"updated_at",
}

// Upsert formu form_no anahtarıyla ekler veya günceller ve sayacı yazılan
// numaraya kadar ilerletir; elle numaralandırılmış ya da geri yüklenmiş
// formlar da numara aralığını sahiplenir. İki yazma tek transaction'dadır.
func (r *FormRepository) Upsert(ctx context.Context, form *models.Form) error {
	if form == nil || strings.TrimSpace(form.FormNo) == "" {
		return errors.New("form numarası olmadan form kaydedilemez")
	}
	// Yüklenmiş bir kaydın yeniden kaydı PK çakışması üretmesin diye kimlik
	// ve zaman damgaları sıfırlanmış bir kopya yazılır; created_at çakışma
	// güncellemelerinin dışında olduğundan mevcut satırda korunur.
	rec := *form
	rec.ID = 0
	rec.CreatedAt = time.Time{}
	rec.UpdatedAt = time.Time{}

	return dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "form_no"}},
			DoUpdates: clause.AssignmentColumns(formUpsertColumns),
		}).Create(&rec).Error
		if err != nil {
			configslog.Log.Error("FormRepository.Upsert: DB hatası", zap.String("form_no", form.FormNo), zap.Error(err))
			return err
		}

		if n, convErr := strconv.ParseInt(form.FormNo, 10, 64); convErr == nil {
			seqRepo := &SequenceRepository{db: tx}
			if err := seqRepo.AdvanceTo(ContextWithTx(ctx, tx), n); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByFormNo verilen numaraya sahip formu döndürür.
func (r *FormRepository) FindByFormNo(ctx context.Context, formNo string) (*models.Form, error) {
	formNo = strings.TrimSpace(formNo)
	if formNo == "" {
		return nil, ErrNotFound
	}
	var form models.Form
	err := dbFromContext(ctx, r.db).Where("form_no = ?", formNo).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByFormNo: DB hatası", zap.String("form_no", formNo), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// Assign atama alanlarını günceller. assignedTo nil verildiğinde atayan ve
// zaman damgası da temizlenir; değer verildiğinde damga o anki zamandır.
// Döndürülen zaman damgası yeni assigned_at değeridir (temizlemede nil).
func (r *FormRepository) Assign(ctx context.Context, formNo string, assignedTo, assignedBy *uint) (*time.Time, error) {
	var assignedAt *time.Time
	if assignedTo != nil {
		now := time.Now().UTC()
		assignedAt = &now
	} else {
		assignedBy = nil
	}

	updates := map[string]interface{}{
		"assigned_to_user_id": assignedTo,
		"assigned_by_user_id": assignedBy,
		"assigned_at":         assignedAt,
		"updated_at":          time.Now().UTC(),
	}

	result := dbFromContext(ctx, r.db).Model(&models.Form{}).
		Where("form_no = ?", formNo).
		Updates(updates)
	if result.Error != nil {
		configslog.Log.Error("FormRepository.Assign: DB hatası", zap.String("form_no", formNo), zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return assignedAt, nil
}

// ListFormNumbers tüm form numaralarını sayısal azalan sırada döndürür.
func (r *FormRepository) ListFormNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := dbFromContext(ctx, r.db).Model(&models.Form{}).
		Order(numericFormNoOrder).
		Pluck("form_no", &numbers).Error
	if err != nil {
		configslog.Log.Error("FormRepository.ListFormNumbers: DB hatası", zap.Error(err))
		return nil, err
	}
	return numbers, nil
}

// escapeLike kullanıcı girdisindeki LIKE joker karakterlerini kaçışlar;
// alt çizgi ve yüzde işareti düz metin olarak aranır.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// Search filtreleri VE ile birleştirerek form listesi döndürür. Tarih
// filtreleri ISO gölge sütununu karşılaştırır; tarihi ayrıştırılamamış
// (gölgesi boş) kayıtlar tarih aralığı verildiğinde sessizce elenir.
// Sıralama: en yeni yola çıkış tarihi önce, eşitlikte büyük numara önce.
func (r *FormRepository) Search(ctx context.Context, filter FormSearchFilter) ([]models.Form, error) {
	query := dbFromContext(ctx, r.db).Model(&models.Form{})

	if filter.PersonKey != "" {
		query = query.Where(`personel_search LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.PersonKey)+"%")
	}
	if filter.LocationKey != "" {
		query = query.Where(`gorev_yeri_lower LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.LocationKey)+"%")
	}
	if filter.StartISO != "" {
		query = query.Where("yola_cikis_tarih_iso <> '' AND yola_cikis_tarih_iso >= ?", filter.StartISO)
	}
	if filter.EndISO != "" {
		query = query.Where("yola_cikis_tarih_iso <> '' AND yola_cikis_tarih_iso <= ?", filter.EndISO)
	}

	var forms []models.Form
	err := query.
		Order("CASE WHEN yola_cikis_tarih_iso = '' THEN 1 ELSE 0 END").
		Order("yola_cikis_tarih_iso DESC").
		Order(numericFormNoOrder).
		Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.Search: DB hatası", zap.Error(err))
		return nil, err
	}
	return forms, nil
}

// FindAllOrdered tüm formları sayısal numara sırasına göre (azalan)
// döndürür. Raporlama bu sıralamayı korur.
func (r *FormRepository) FindAllOrdered(ctx context.Context) ([]models.Form, error) {
	var forms []models.Form
	err := dbFromContext(ctx, r.db).Order(numericFormNoOrder).Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllOrdered: DB hatası", zap.Error(err))
		return nil, err
	}
	return forms, nil
}

var _ IFormRepository = (*FormRepository)(nil)
