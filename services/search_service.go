package services

import (
	"context"
	"strings"

	"deltaproje.app/models"
	"deltaproje.app/pkg/normalize"
	"deltaproje.app/repositories"

	"gorm.io/gorm"
)

// FormSummary liste görünümleri için bilinçli olarak küçültülmüş form
// izdüşümüdür; tam kayıt yerine yalnızca özet alanlar taşınır.
type FormSummary struct {
	FormNo         string `json:"form_no"`
	Tarih          string `json:"tarih"`
	GorevTanimi    string `json:"gorev_tanimi"`
	GorevYeri      string `json:"gorev_yeri"`
	YolaCikisTarih string `json:"yola_cikis_tarih"`
	Personel       string `json:"personel"`
	Durum          string `json:"durum"`
}

// ISearchService form arama işlemleri için arayüz.
type ISearchService interface {
	SearchForms(ctx context.Context, person, location, startDate, endDate string) ([]FormSummary, error)
}

// SearchService ISearchService arayüzünü uygular.
type SearchService struct {
	repo repositories.IFormRepository
}

// NewSearchService yeni bir SearchService örneği oluşturur.
func NewSearchService(db *gorm.DB) ISearchService {
	return &SearchService{repo: repositories.NewFormRepository(db)}
}

// SearchForms isteğe bağlı filtreleri VE ile birleştirerek özet listesi
// döndürür. Kişi ve konum sorguları, saklanan arama sütunlarıyla aynı
// biçimde normalize edilip alt dize olarak aranır; tarih aralığı ISO gölge
// sütununu karşılaştırır ve tarihi ayrıştırılamamış formları sessizce eler.
func (s *SearchService) SearchForms(ctx context.Context, person, location, startDate, endDate string) ([]FormSummary, error) {
	filter := repositories.FormSearchFilter{
		PersonKey:   normalize.SearchKey(person),
		LocationKey: normalize.SearchKey(location),
		StartISO:    normalize.ToISODate(startDate),
		EndISO:      normalize.ToISODate(endDate),
	}

	forms, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]FormSummary, 0, len(forms))
	for i := range forms {
		summaries = append(summaries, summarizeForm(&forms[i]))
	}
	return summaries, nil
}

// summarizeForm tam kayıttan özet üretir; durum her zaman yeniden
// hesaplanır, saklanan değere güvenilmez.
func summarizeForm(form *models.Form) FormSummary {
	names := make([]string, 0, 5)
	for _, name := range form.PersonelSlots() {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return FormSummary{
		FormNo:         form.FormNo,
		Tarih:          form.Tarih,
		GorevTanimi:    form.GorevTanimi,
		GorevYeri:      form.GorevYeri,
		YolaCikisTarih: form.YolaCikisTarih,
		Personel:       strings.Join(names, ", "),
		Durum:          DetermineFormStatus(form).Code,
	}
}
