package services

import (
	"context"
	"reflect"
	"testing"

	"deltaproje.app/models"
	"deltaproje.app/repositories"
	"deltaproje.app/testutil"
)

func upsertReportForm(t *testing.T, repo repositories.IFormRepository, formNo string, in FormInput) {
	t.Helper()
	form := BuildFormPayload(formNo, in, models.StatusYarim)
	if err := repo.Upsert(context.Background(), &form); err != nil {
		t.Fatalf("Upsert(%q) hata: %v", formNo, err)
	}
}

func TestReportServiceSummarize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewFormRepository(db)
	svc := NewReportService(db)
	ctx := context.Background()

	// Tam dolu form: 10.5 saat seyahat, 8 saat calisma, 2 harcama.
	upsertReportForm(t, repo, "00001", FormInput{
		GorevIl:               "İstanbul",
		GorevIlce:             "Şişli",
		GorevFirma:            "ABC Şirketi",
		Personel1:             "Gülşah Öztürk",
		Personel2:             "Mehmet Çalışan",
		YolaCikisTarih:        "05.03.2025",
		YolaCikisSaat:         "08:00",
		DonusTarih:            "05.03.2025",
		DonusSaat:             "18:30",
		CalismaBaslangicTarih: "05.03.2025",
		CalismaBaslangicSaat:  "09:00",
		CalismaBitisTarih:     "05.03.2025",
		CalismaBitisSaat:      "17:00",
		HarcamaBildirimleri: []models.ExpenseEntry{
			{Description: "Yakıt"},
			{Description: "Yemek"},
		},
	})

	// Yari dolu form: seyahat ucu eksik, konum serbest metin.
	upsertReportForm(t, repo, "00002", FormInput{
		GorevYeri:      "Ankara şantiyesi",
		Personel1:      "Gülşah Öztürk",
		YolaCikisTarih: "12.03.2025",
		YolaCikisSaat:  "07:00",
	})

	// Tarihsiz form: sinirli araliga girmez, konum alanlari bos.
	upsertReportForm(t, repo, "00003", FormInput{
		Personel1: "Ali Çalışan",
	})

	summary, err := svc.Summarize(ctx, "", "")
	if err != nil {
		t.Fatalf("Summarize hata: %v", err)
	}

	if summary.FormCount != 3 {
		t.Errorf("FormCount = %d", summary.FormCount)
	}
	if summary.CompletedCount != 1 || summary.IncompleteCount != 2 {
		t.Errorf("durum sayimlari = %d/%d", summary.CompletedCount, summary.IncompleteCount)
	}

	if summary.Travel.Count != 1 || summary.Travel.TotalHours != 10.5 || summary.Travel.AverageHours != 10.5 {
		t.Errorf("seyahat istatistigi = %+v", summary.Travel)
	}
	if summary.Work.Count != 1 || summary.Work.TotalHours != 8 {
		t.Errorf("calisma istatistigi = %+v", summary.Work)
	}

	// Harcamasi olmayan formlar da 0 ile seride yer alir; sira form
	// listesinin sirasidir (numara azalan).
	wantNos := []string{"00003", "00002", "00001"}
	wantCounts := []int{0, 0, 2}
	if !reflect.DeepEqual(summary.Expenses.FormNos, wantNos) || !reflect.DeepEqual(summary.Expenses.Counts, wantCounts) {
		t.Errorf("harcama ozeti = %+v, want %v / %v", summary.Expenses, wantNos, wantCounts)
	}

	if summary.UniquePersonCount != 3 {
		t.Errorf("UniquePersonCount = %d", summary.UniquePersonCount)
	}
	if len(summary.PersonBreakdown) == 0 || summary.PersonBreakdown[0].Name != "Gülşah Öztürk" || summary.PersonBreakdown[0].Count != 2 {
		t.Errorf("kisi dokumu = %+v", summary.PersonBreakdown)
	}

	wantLocations := map[string]int{
		"İstanbul, Şişli, ABC Şirketi": 1,
		"Ankara şantiyesi":             1,
		"Belirtilmemiş":                1,
	}
	if len(summary.LocationBreakdown) != len(wantLocations) {
		t.Fatalf("konum dokumu = %+v", summary.LocationBreakdown)
	}
	for _, item := range summary.LocationBreakdown {
		if wantLocations[item.Name] != item.Count {
			t.Errorf("konum %q = %d", item.Name, item.Count)
		}
	}
}

func TestReportServiceDateRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewFormRepository(db)
	svc := NewReportService(db)
	ctx := context.Background()

	upsertReportForm(t, repo, "00001", FormInput{YolaCikisTarih: "01.03.2025"})
	// Yola cikisi olmayan form gorev tarihine duser.
	upsertReportForm(t, repo, "00002", FormInput{GorevTarih: "15.03.2025"})
	upsertReportForm(t, repo, "00003", FormInput{YolaCikisTarih: "01.04.2025"})
	upsertReportForm(t, repo, "00004", FormInput{})

	tests := []struct {
		name  string
		start string
		end   string
		count int
	}{
		{"sinirsiz aralik tumunu sayar", "", "", 4},
		{"mart araligi", "01.03.2025", "31.03.2025", 2},
		{"kapsayici alt sinir", "01.03.2025", "01.03.2025", 1},
		{"tek tarafli ust sinir", "", "15.03.2025", 2},
		{"tarihsiz form sinirli aralikta sayilmaz", "01.01.2025", "31.12.2025", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := svc.Summarize(ctx, tt.start, tt.end)
			if err != nil {
				t.Fatalf("Summarize hata: %v", err)
			}
			if summary.FormCount != tt.count {
				t.Errorf("FormCount = %d, want %d", summary.FormCount, tt.count)
			}
		})
	}
}

func TestReportServiceDurationEdgeCases(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewFormRepository(db)
	svc := NewReportService(db)
	ctx := context.Background()

	// Bitis baslangictan once: orneklem disi.
	upsertReportForm(t, repo, "00001", FormInput{
		YolaCikisTarih: "05.03.2025",
		YolaCikisSaat:  "18:00",
		DonusTarih:     "05.03.2025",
		DonusSaat:      "08:00",
	})
	// Saat ayristirilamiyor: orneklem disi.
	upsertReportForm(t, repo, "00002", FormInput{
		YolaCikisTarih: "05.03.2025",
		YolaCikisSaat:  "sabah",
		DonusTarih:     "05.03.2025",
		DonusSaat:      "18:00",
	})
	// Gece yarisini asan donus: 14 saat.
	upsertReportForm(t, repo, "00003", FormInput{
		YolaCikisTarih: "05.03.2025",
		YolaCikisSaat:  "20:00",
		DonusTarih:     "06.03.2025",
		DonusSaat:      "10:00",
	})

	summary, err := svc.Summarize(ctx, "", "")
	if err != nil {
		t.Fatalf("Summarize hata: %v", err)
	}
	if summary.Travel.Count != 1 {
		t.Errorf("Travel.Count = %d, want 1", summary.Travel.Count)
	}
	if summary.Travel.TotalHours != 14 {
		t.Errorf("Travel.TotalHours = %v, want 14", summary.Travel.TotalHours)
	}
}
