package services

import (
	"context"
	"errors"
	"time"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"
	"deltaproje.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormServiceError form servisine özgü hata türü.
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound       FormServiceError = "form bulunamadı"
	ErrFormSaveFailed     FormServiceError = "form kaydedilemedi"
	ErrStepForbidden      FormServiceError = "bu adımı gönderme yetkiniz yok"
	ErrAssigneeNotFound   FormServiceError = "atanacak kullanıcı bulunamadı"
	ErrAssigneeNotAllowed FormServiceError = "yalnızca aktif calisan rolü atanabilir"
)

// Yeni form açılışında kullanılan belge varsayılanları.
const (
	defaultDokNo = "F-001"
	defaultRevNo = "00 / 06.05.24"
)

// displayDateLayout tarih alanlarının gösterim biçimi.
const displayDateLayout = "02.01.2006"

// Actor bir isteği yapan, kimliği çözümlenmiş kullanıcıdır. Kimlik
// doğrulamanın kendisi bu çekirdeğin dışındadır.
type Actor struct {
	UserID   uint
	Role     string
	FullName string
}

// IsPrivileged admin ve atayan rollerinin tam yetkili olup olmadığını
// söyler.
func (a Actor) IsPrivileged() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleAtayan
}

// FormData API sınırına dönen, alt koleksiyonları çözülmüş ve durumu
// yeniden hesaplanmış form görünümüdür.
type FormData struct {
	Form       models.Form           `json:"form"`
	Ekler      []models.Attachment   `json:"gorev_ekleri"`
	Harcamalar []models.ExpenseEntry `json:"harcama_bildirimleri"`
	Status     FormStatus            `json:"status"`
}

// IFormService form yaşam döngüsü işlemleri için arayüz.
type IFormService interface {
	CreateForm(ctx context.Context) (*FormData, error)
	LoadForm(ctx context.Context, formNo string) (*FormData, error)
	SaveStep(ctx context.Context, formNo string, step int, in FormInput, actor Actor) (*FormData, error)
	SaveForm(ctx context.Context, formNo string, in FormInput, actor Actor) (*FormData, error)
	AssignForm(ctx context.Context, formNo string, assignedTo, assignedBy *uint) (*time.Time, error)
	ListFormNumbers(ctx context.Context) ([]string, error)
}

// FormService IFormService arayüzünü uygular.
type FormService struct {
	repo     repositories.IFormRepository
	seqRepo  repositories.ISequenceRepository
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewFormService yeni bir FormService örneği oluşturur.
func NewFormService(db *gorm.DB) IFormService {
	return &FormService{
		repo:     repositories.NewFormRepository(db),
		seqRepo:  repositories.NewSequenceRepository(db),
		userRepo: repositories.NewUserRepository(db),
		db:       db,
	}
}

// CreateForm yeni bir numara üretir ve boş formu yarım durumda kaydeder.
// Numara üretimi ve ilk kayıt zorunlu olarak ayrı transaction'lardır;
// numara, kayıt ona referans vermeden önce var olmalıdır.
func (s *FormService) CreateForm(ctx context.Context) (*FormData, error) {
	formNo, err := s.seqRepo.NextFormNo(ctx)
	if err != nil {
		return nil, err
	}

	in := FormInput{
		Tarih: time.Now().Format(displayDateLayout),
		DokNo: defaultDokNo,
		RevNo: defaultRevNo,
	}
	form := BuildFormPayload(formNo, in, models.StatusYarim)
	if err := s.repo.Upsert(ctx, &form); err != nil {
		return nil, ErrFormSaveFailed
	}

	configslog.SLog.Infof("Yeni form oluşturuldu: %s", formNo)
	return s.LoadForm(ctx, formNo)
}

// LoadForm formu yükler, JSON alt koleksiyonlarını çözer ve durumu yeniden
// hesaplar. Saklanan durum asla olduğu gibi gösterilmez.
func (s *FormService) LoadForm(ctx context.Context, formNo string) (*FormData, error) {
	form, err := s.repo.FindByFormNo(ctx, formNo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	status := DetermineFormStatus(form)
	form.Durum = status.Code

	return &FormData{
		Form:       *form,
		Ekler:      models.DecodeAttachments(form.GorevEkleri),
		Harcamalar: models.DecodeExpenseEntries(form.HarcamaBildirimleri),
		Status:     status,
	}, nil
}

// SaveStep bir sihirbaz adımı gönderimini kaydeder. Rol kapısından
// geçemeyen gönderim hiçbir durumu değiştirmeden reddedilir; kalınan yer
// gönderilen adımdan güncellenir.
func (s *FormService) SaveStep(ctx context.Context, formNo string, step int, in FormInput, actor Actor) (*FormData, error) {
	existing, err := s.repo.FindByFormNo(ctx, formNo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	step = ClampStep(step)
	isAssignee := existing.AssignedToUserID != nil && *existing.AssignedToUserID == actor.UserID
	if !CanEditStep(actor.Role, StepIDAt(step), isAssignee) {
		return nil, ErrStepForbidden
	}

	form := BuildFormPayload(formNo, in, "")
	form.LastStep = step
	form.Durum = DetermineFormStatus(&form).Code
	preserveAssignment(&form, existing, in)

	if err := s.repo.Upsert(ctx, &form); err != nil {
		configslog.Log.Error("SaveStep: kayıt başarısız", zap.String("form_no", formNo), zap.Error(err))
		return nil, ErrFormSaveFailed
	}
	return s.LoadForm(ctx, formNo)
}

// preserveAssignment atama alanları girdide hiç taşınmamışsa mevcut
// kayıttaki değerleri korur; atama sihirbaz alanı değil mağaza üst verisidir
// ve yalnızca AssignForm yoluyla değişmelidir.
func preserveAssignment(form, existing *models.Form, in FormInput) {
	if in.AssignedTo == "" && in.AssignedBy == "" && in.AssignedAt == nil {
		form.AssignedToUserID = existing.AssignedToUserID
		form.AssignedByUserID = existing.AssignedByUserID
		form.AssignedAt = existing.AssignedAt
	}
}

// SaveForm formu açık son kayıt olarak yazar; durum kaydedilen alanlardan
// hesaplanır. calisan rolü yalnızca atanmış olduğu formu kaydedebilir.
func (s *FormService) SaveForm(ctx context.Context, formNo string, in FormInput, actor Actor) (*FormData, error) {
	existing, err := s.repo.FindByFormNo(ctx, formNo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	if actor.Role == models.RoleCalisan {
		isAssignee := existing.AssignedToUserID != nil && *existing.AssignedToUserID == actor.UserID
		if !isAssignee {
			return nil, ErrStepForbidden
		}
	}

	form := BuildFormPayload(formNo, in, "")
	form.LastStep = ClampStep(form.LastStep)
	status := DetermineFormStatus(&form)
	form.Durum = status.Code
	preserveAssignment(&form, existing, in)

	if err := s.repo.Upsert(ctx, &form); err != nil {
		configslog.Log.Error("SaveForm: kayıt başarısız", zap.String("form_no", formNo), zap.Error(err))
		return nil, ErrFormSaveFailed
	}

	configslog.SLog.Infof("Form %s olarak kaydedildi: %s", status.Code, formNo)
	return s.LoadForm(ctx, formNo)
}

// AssignForm atama alanlarını, kaydın kısmi kaydıyla birlikte tek
// transaction içinde yazar; atama, kaydı olmadan asla gözlemlenemez.
// assignedTo nil verilirse atama temizlenir.
func (s *FormService) AssignForm(ctx context.Context, formNo string, assignedTo, assignedBy *uint) (*time.Time, error) {
	if assignedTo != nil {
		user, err := s.userRepo.FindByID(ctx, *assignedTo)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, err
		}
		if user.Role != models.RoleCalisan || !user.IsActive {
			return nil, ErrAssigneeNotAllowed
		}
	}

	var stamped *time.Time
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)

		form, err := s.repo.FindByFormNo(txCtx, formNo)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFormNotFound
			}
			return err
		}

		if err := s.repo.Upsert(txCtx, form); err != nil {
			return err
		}

		ts, err := s.repo.Assign(txCtx, formNo, assignedTo, assignedBy)
		if err != nil {
			return err
		}
		stamped = ts
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrFormNotFound) {
			configslog.Log.Error("AssignForm: transaction başarısız", zap.String("form_no", formNo), zap.Error(txErr))
		}
		return nil, txErr
	}

	configslog.SLog.Infof("Form ataması güncellendi: %s", formNo)
	return stamped, nil
}

// ListFormNumbers tüm form numaralarını sayısal azalan sırada döndürür.
func (s *FormService) ListFormNumbers(ctx context.Context) ([]string, error) {
	return s.repo.ListFormNumbers(ctx)
}

var _ IFormService = (*FormService)(nil)
