package services

import (
	"sync"

	"deltaproje.app/models"
)

// FormStep sihirbazın tek bir adımını tanımlar.
type FormStep struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FinalStepID bilgi girişi adımı; calisan rolünün gönderebileceği tek adım.
const FinalStepID = "yapilan_isler"

// FormSteps sihirbazın doğrusal adım dizisi. Kalınan yer last_step olarak
// saklanır ve her yazmada [0, len-1] aralığına kenetlenir.
var FormSteps = []FormStep{
	{ID: "form_bilgileri", Title: "Form Bilgileri"},
	{ID: "gorevli_personel", Title: "Görevli Personel"},
	{ID: "avans_taseron", Title: "Avans ve Taşeron"},
	{ID: "gorev_tanimi", Title: "Görev Tanımı"},
	{ID: "gorev_yeri", Title: "Görev Yeri"},
	{ID: "saat_bilgileri", Title: "Saat Bilgileri"},
	{ID: "arac_bilgisi", Title: "Araç Bilgisi"},
	{ID: "hazirlayan", Title: "Hazırlayan"},
	{ID: FinalStepID, Title: "Yapılan İşler ve Harcamalar"},
}

// TotalSteps adım sayısı.
func TotalSteps() int {
	return len(FormSteps)
}

// ClampStep adım indeksini [0, TotalSteps-1] aralığına kenetler.
func ClampStep(step int) int {
	if step < 0 {
		return 0
	}
	if max := TotalSteps() - 1; step > max {
		return max
	}
	return step
}

// StepIDAt verilen (kenetlenmiş) indeksin adım kimliğini döndürür.
func StepIDAt(step int) string {
	return FormSteps[ClampStep(step)].ID
}

// CanEditStep rolün verilen adımı gönderip gönderemeyeceğini söyler.
// admin ve atayan tüm adımları düzenler; calisan yalnızca son bilgi girişi
// adımını ve yalnızca formun atanmış kişisiyse gönderebilir. Rol mantığı
// her çağrı yerinde yeniden türetilmek yerine tek noktada durur.
func CanEditStep(role, stepID string, isAssignee bool) bool {
	switch role {
	case models.RoleAdmin, models.RoleAtayan:
		return true
	case models.RoleCalisan:
		return stepID == FinalStepID && isAssignee
	}
	return false
}

// LockSet tamamlanmış formların salt okunur etkileşim durumunu tutar.
// Kilit kayda yazılmaz; çağıran tarafın elinde yaşar ve form yeniden
// açılana kadar adım gönderimlerini engeller.
type LockSet struct {
	mu    sync.Mutex
	forms map[string]struct{}
}

// NewLockSet boş bir kilit kümesi oluşturur.
func NewLockSet() *LockSet {
	return &LockSet{forms: make(map[string]struct{})}
}

// Lock formu kilitler.
func (l *LockSet) Lock(formNo string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.forms[formNo] = struct{}{}
}

// Unlock form kilidini kaldırır.
func (l *LockSet) Unlock(formNo string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.forms, formNo)
}

// IsLocked formun kilitli olup olmadığını söyler.
func (l *LockSet) IsLocked(formNo string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.forms[formNo]
	return ok
}
