package services

import (
	"strings"

	"deltaproje.app/models"
)

// FormStatus formun hesaplanmış tamamlanma durumudur.
type FormStatus struct {
	Code          string   `json:"code"`
	MissingFields []string `json:"missing_fields"`
}

// IsComplete durum kodunun TAMAMLANDI olup olmadığını söyler.
func (s FormStatus) IsComplete() bool {
	return s.Code == models.StatusTamamlandi
}

// requiredFormFields tamamlanma için zorunlu 8 alan. Küme sabittir.
var requiredFormFields = []struct {
	key   string
	value func(*models.Form) string
}{
	{"yola_cikis_tarih", func(f *models.Form) string { return f.YolaCikisTarih }},
	{"yola_cikis_saat", func(f *models.Form) string { return f.YolaCikisSaat }},
	{"calisma_baslangic_tarih", func(f *models.Form) string { return f.CalismaBaslangicTarih }},
	{"calisma_baslangic_saat", func(f *models.Form) string { return f.CalismaBaslangicSaat }},
	{"calisma_bitis_tarih", func(f *models.Form) string { return f.CalismaBitisTarih }},
	{"calisma_bitis_saat", func(f *models.Form) string { return f.CalismaBitisSaat }},
	{"donus_tarih", func(f *models.Form) string { return f.DonusTarih }},
	{"donus_saat", func(f *models.Form) string { return f.DonusSaat }},
}

// DetermineFormStatus tamamlanma durumunu zorunlu alanların doluluğundan
// hesaplar. Bir alan ancak kırpılmış değeri boş değilse mevcut sayılır.
// Saklanan durum sütunu yalnızca önbellektir; durumu gösteren her okuma
// yolu bu fonksiyonu yeniden çalıştırmalıdır, çünkü kayıt durumu hiç
// hesaplamamış bir yoldan (ör. ham kısmi kayıt) yazılmış olabilir.
func DetermineFormStatus(form *models.Form) FormStatus {
	missing := []string{}
	for _, field := range requiredFormFields {
		if strings.TrimSpace(field.value(form)) == "" {
			missing = append(missing, field.key)
		}
	}

	code := models.StatusTamamlandi
	if len(missing) > 0 {
		code = models.StatusYarim
	}
	return FormStatus{Code: code, MissingFields: missing}
}
