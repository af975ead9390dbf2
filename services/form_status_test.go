package services

import (
	"reflect"
	"testing"

	"deltaproje.app/models"
)

func completeForm() *models.Form {
	return &models.Form{
		YolaCikisTarih:        "05.03.2025",
		YolaCikisSaat:         "08:00",
		CalismaBaslangicTarih: "05.03.2025",
		CalismaBaslangicSaat:  "09:00",
		CalismaBitisTarih:     "05.03.2025",
		CalismaBitisSaat:      "17:00",
		DonusTarih:            "05.03.2025",
		DonusSaat:             "18:30",
	}
}

func TestDetermineFormStatusComplete(t *testing.T) {
	status := DetermineFormStatus(completeForm())
	if !status.IsComplete() {
		t.Fatalf("tum alanlar dolu, durum %q geldi (eksik: %v)", status.Code, status.MissingFields)
	}
	if len(status.MissingFields) != 0 {
		t.Errorf("eksik alan listesi bos olmali: %v", status.MissingFields)
	}
}

func TestDetermineFormStatusMissing(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Form)
		missing []string
	}{
		{
			"donus saati eksik",
			func(f *models.Form) { f.DonusSaat = "" },
			[]string{"donus_saat"},
		},
		{
			"yalnizca bosluk eksik sayilir",
			func(f *models.Form) { f.YolaCikisTarih = "   " },
			[]string{"yola_cikis_tarih"},
		},
		{
			"birden cok eksik",
			func(f *models.Form) {
				f.CalismaBaslangicTarih = ""
				f.CalismaBaslangicSaat = ""
			},
			[]string{"calisma_baslangic_tarih", "calisma_baslangic_saat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := completeForm()
			tt.mutate(form)
			status := DetermineFormStatus(form)
			if status.Code != models.StatusYarim {
				t.Errorf("durum = %q, want %q", status.Code, models.StatusYarim)
			}
			if !reflect.DeepEqual(status.MissingFields, tt.missing) {
				t.Errorf("eksik alanlar = %v, want %v", status.MissingFields, tt.missing)
			}
		})
	}
}

func TestDetermineFormStatusIgnoresStoredDurum(t *testing.T) {
	// Saklanan durum yalnizca onbellek; bos form TAMAMLANDI yazilmis olsa
	// bile hesap YARIM doner.
	form := &models.Form{Durum: models.StatusTamamlandi}
	if status := DetermineFormStatus(form); status.IsComplete() {
		t.Errorf("bos form tamamlanmis sayilamaz")
	}
}
