package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"deltaproje.app/models"
	"deltaproje.app/pkg/normalize"
	"deltaproje.app/repositories"

	"gorm.io/gorm"
)

// DurationStats saat cinsinden süre istatistikleri; yalnızca iki ucu da
// ayrıştırılabilen ve bitişi başlangıçtan önce olmayan kayıtlar örneklenir.
type DurationStats struct {
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
	Count        int     `json:"count"`
}

// CountBreakdown ada göre sayım; rapor dökümlerinde ortak gösterim.
type CountBreakdown struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ExpenseSummary aralıktaki her formun harcama sayısını paralel dizilerde
// taşır; harcaması olmayan form 0 ile yer alır ve sıralama form listesinin
// sırasını korur.
type ExpenseSummary struct {
	FormNos []string `json:"form_nos"`
	Counts  []int    `json:"counts"`
}

// ReportSummary tarih aralığına göre toplanmış yönetim raporu.
type ReportSummary struct {
	FormCount         int              `json:"form_count"`
	CompletedCount    int              `json:"completed_count"`
	IncompleteCount   int              `json:"incomplete_count"`
	Travel            DurationStats    `json:"travel"`
	Work              DurationStats    `json:"work"`
	Expenses          ExpenseSummary   `json:"expenses"`
	PersonBreakdown   []CountBreakdown `json:"person_breakdown"`
	UniquePersonCount int              `json:"unique_person_count"`
	LocationBreakdown []CountBreakdown `json:"location_breakdown"`
}

// IReportService rapor işlemleri için arayüz.
type IReportService interface {
	Summarize(ctx context.Context, startDate, endDate string) (*ReportSummary, error)
}

// ReportService IReportService arayüzünü uygular.
type ReportService struct {
	repo repositories.IFormRepository
}

// NewReportService yeni bir ReportService örneği oluşturur.
func NewReportService(db *gorm.DB) IReportService {
	return &ReportService{repo: repositories.NewFormRepository(db)}
}

// emptyLocationLabel konum alanları tamamen boş formların rapor kovası.
const emptyLocationLabel = "Belirtilmemiş"

// Summarize tüm formları tarih aralığına göre süzüp toplar. Aralık
// filtresi yola çıkış tarihini, o boşsa görev tarihini esas alır; iki
// tarih de boşsa form yalnızca sınırsız aralıkta sayılır. Sınırlar
// kapsayıcıdır ve tek taraflı bırakılabilir.
func (s *ReportService) Summarize(ctx context.Context, startDate, endDate string) (*ReportSummary, error) {
	forms, err := s.repo.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}

	startISO := normalize.ToISODate(startDate)
	endISO := normalize.ToISODate(endDate)

	summary := &ReportSummary{
		Expenses:          ExpenseSummary{FormNos: []string{}, Counts: []int{}},
		PersonBreakdown:   []CountBreakdown{},
		LocationBreakdown: []CountBreakdown{},
	}

	var travelTotal, workTotal float64
	personCounts := map[string]int{}
	locationCounts := map[string]int{}

	for i := range forms {
		form := &forms[i]
		if !inDateRange(reportDateOf(form), startISO, endISO) {
			continue
		}

		summary.FormCount++
		if DetermineFormStatus(form).IsComplete() {
			summary.CompletedCount++
		} else {
			summary.IncompleteCount++
		}

		if hours, ok := durationHours(form.YolaCikisTarih, form.YolaCikisSaat, form.DonusTarih, form.DonusSaat); ok {
			travelTotal += hours
			summary.Travel.Count++
		}
		if hours, ok := durationHours(form.CalismaBaslangicTarih, form.CalismaBaslangicSaat, form.CalismaBitisTarih, form.CalismaBitisSaat); ok {
			workTotal += hours
			summary.Work.Count++
		}

		entries := models.DecodeExpenseEntries(form.HarcamaBildirimleri)
		summary.Expenses.FormNos = append(summary.Expenses.FormNos, form.FormNo)
		summary.Expenses.Counts = append(summary.Expenses.Counts, len(entries))

		for _, name := range form.PersonelSlots() {
			if name = strings.TrimSpace(name); name != "" {
				personCounts[name]++
			}
		}

		locationCounts[locationLabelOf(form)]++
	}

	summary.Travel.TotalHours = round2(travelTotal)
	summary.Work.TotalHours = round2(workTotal)
	if summary.Travel.Count > 0 {
		summary.Travel.AverageHours = round2(travelTotal / float64(summary.Travel.Count))
	}
	if summary.Work.Count > 0 {
		summary.Work.AverageHours = round2(workTotal / float64(summary.Work.Count))
	}

	summary.PersonBreakdown = sortedBreakdown(personCounts)
	summary.UniquePersonCount = len(personCounts)
	summary.LocationBreakdown = sortedBreakdown(locationCounts)

	return summary, nil
}

// reportDateOf raporlamada kullanılan tarihi döndürür: önce yola çıkış,
// o yoksa görev tarihi.
func reportDateOf(form *models.Form) string {
	if form.YolaCikisTarihISO != "" {
		return form.YolaCikisTarihISO
	}
	return form.GorevTarihISO
}

// inDateRange kapsayıcı ISO aralık kontrolü; tarihi olmayan form yalnızca
// hiç sınır verilmemişse geçer.
func inDateRange(iso, startISO, endISO string) bool {
	if iso == "" {
		return startISO == "" && endISO == ""
	}
	if startISO != "" && iso < startISO {
		return false
	}
	if endISO != "" && iso > endISO {
		return false
	}
	return true
}

// durationHours iki tarih/saat çifti arasındaki süreyi saat olarak verir.
// Uçlardan biri ayrıştırılamazsa veya bitiş başlangıçtan önceyse kayıt
// örneklem dışı bırakılır.
func durationHours(startDate, startTime, endDate, endTime string) (float64, bool) {
	start, ok := normalize.CombineTimestamp(startDate, startTime)
	if !ok {
		return 0, false
	}
	end, ok := normalize.CombineTimestamp(endDate, endTime)
	if !ok {
		return 0, false
	}
	if end.Before(start) {
		return 0, false
	}
	return end.Sub(start).Hours(), true
}

// locationLabelOf il/ilçe/firma alanlarını virgülle birleştirir; üçü de
// boşsa serbest metin konuma, o da boşsa boş kovaya düşer.
func locationLabelOf(form *models.Form) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{form.GorevIl, form.GorevIlce, form.GorevFirma} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if loc := strings.TrimSpace(form.GorevYeri); loc != "" {
		return loc
	}
	return emptyLocationLabel
}

// sortedBreakdown sayım haritasını önce sayı azalan, eşitlikte ad artan
// sırayla dilime çevirir.
func sortedBreakdown(counts map[string]int) []CountBreakdown {
	out := make([]CountBreakdown, 0, len(counts))
	for name, count := range counts {
		out = append(out, CountBreakdown{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
