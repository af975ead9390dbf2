package services

import (
	"context"
	"errors"
	"testing"

	"deltaproje.app/models"
	"deltaproje.app/testutil"
)

func TestFormServiceCreateForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewFormService(db)
	ctx := context.Background()

	first, err := svc.CreateForm(ctx)
	if err != nil {
		t.Fatalf("CreateForm hata: %v", err)
	}
	if first.Form.FormNo != "00001" {
		t.Errorf("ilk form numarasi = %q", first.Form.FormNo)
	}
	if first.Form.DokNo != "F-001" {
		t.Errorf("DokNo varsayilani = %q", first.Form.DokNo)
	}
	if first.Status.IsComplete() {
		t.Error("yeni form yarim acilmali")
	}

	second, err := svc.CreateForm(ctx)
	if err != nil {
		t.Fatalf("CreateForm hata: %v", err)
	}
	if second.Form.FormNo != "00002" {
		t.Errorf("ikinci form numarasi = %q", second.Form.FormNo)
	}
}

func TestFormServiceLoadFormRecomputesStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewFormService(db)
	ctx := context.Background()

	// Durum sutunu yanlis onbellekle dogrudan yazilir; yukleme dogru
	// degeri hesaplamali.
	form := models.Form{FormNo: "00099", Durum: models.StatusTamamlandi}
	if err := db.Create(&form).Error; err != nil {
		t.Fatalf("kayit yazilamadi: %v", err)
	}

	data, err := svc.LoadForm(ctx, "00099")
	if err != nil {
		t.Fatalf("LoadForm hata: %v", err)
	}
	if data.Status.IsComplete() {
		t.Error("bos formun hesaplanan durumu YARIM olmali")
	}
	if len(data.Status.MissingFields) == 0 {
		t.Error("eksik alanlar raporlanmali")
	}

	if _, err := svc.LoadForm(ctx, "00000"); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("err = %v, want ErrFormNotFound", err)
	}
}

func TestFormServiceSaveStepRoleGate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewFormService(db)
	ctx := context.Background()

	worker := testutil.SeedUser(t, db, "Mehmet Çalışan", models.RoleCalisan, "")
	other := testutil.SeedUser(t, db, "Ali Çalışan", models.RoleCalisan, "")
	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")

	created, err := svc.CreateForm(ctx)
	if err != nil {
		t.Fatalf("CreateForm hata: %v", err)
	}
	formNo := created.Form.FormNo

	if _, err := svc.AssignForm(ctx, formNo, &worker.ID, &manager.ID); err != nil {
		t.Fatalf("AssignForm hata: %v", err)
	}

	finalStep := TotalSteps() - 1
	tests := []struct {
		name    string
		actor   Actor
		step    int
		wantErr error
	}{
		{"atayan ara adim yazar", Actor{UserID: manager.ID, Role: models.RoleAtayan}, 3, nil},
		{"atanan calisan son adim yazar", Actor{UserID: worker.ID, Role: models.RoleCalisan}, finalStep, nil},
		{"atanan calisan ara adim yazamaz", Actor{UserID: worker.ID, Role: models.RoleCalisan}, 2, ErrStepForbidden},
		{"atanmamis calisan son adim yazamaz", Actor{UserID: other.ID, Role: models.RoleCalisan}, finalStep, ErrStepForbidden},
		{"rolsuz istek yazamaz", Actor{}, 0, ErrStepForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := FormInput{GorevTanimi: "Bakım"}
			_, err := svc.SaveStep(ctx, formNo, tt.step, in, tt.actor)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("SaveStep hata: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormServiceSaveStepPreservesAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewFormService(db)
	ctx := context.Background()

	worker := testutil.SeedUser(t, db, "Mehmet Çalışan", models.RoleCalisan, "")
	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")

	created, err := svc.CreateForm(ctx)
	if err != nil {
		t.Fatalf("CreateForm hata: %v", err)
	}
	formNo := created.Form.FormNo

	if _, err := svc.AssignForm(ctx, formNo, &worker.ID, &manager.ID); err != nil {
		t.Fatalf("AssignForm hata: %v", err)
	}

	// Atama alanlarini hic tasimayan bir adim kaydi atamaya dokunmamali.
	in := FormInput{GorevTanimi: "Pano montajı"}
	data, err := svc.SaveStep(ctx, formNo, 3, in, Actor{UserID: manager.ID, Role: models.RoleAtayan})
	if err != nil {
		t.Fatalf("SaveStep hata: %v", err)
	}
	if data.Form.AssignedToUserID == nil || *data.Form.AssignedToUserID != worker.ID {
		t.Errorf("adim kaydi atamayi sildi: %v", data.Form.AssignedToUserID)
	}
	if data.Form.AssignedAt == nil {
		t.Error("atama zamani korunmali")
	}
	if data.Form.LastStep != 3 {
		t.Errorf("LastStep = %d", data.Form.LastStep)
	}
}

func TestFormServiceSaveFormComputesStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewFormService(db)
	ctx := context.Background()

	created, err := svc.CreateForm(ctx)
	if err != nil {
		t.Fatalf("CreateForm hata: %v", err)
	}

	in := FormInput{
		YolaCikisTarih:        "05.03.2025",
		YolaCikisSaat:         "08:00",
		CalismaBaslangicTarih: "05.03.2025",
		CalismaBaslangicSaat:  "09:00",
		CalismaBitisTarih:     "05.03.2025",
		CalismaBitisSaat:      "17:00",
		DonusTarih:            "05.03.2025",
		DonusSaat:             "18:30",
	}
	data, err := svc.SaveForm(ctx, created.Form.FormNo, in, Actor{Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("SaveForm hata: %v", err)
	}
	if !data.Status.IsComplete() {
		t.Errorf("tum saat alanlari dolu, durum %q", data.Status.Code)
	}
	if data.Form.Durum != models.StatusTamamlandi {
		t.Errorf("saklanan durum = %q", data.Form.Durum)
	}
}

func TestFormServiceAssignFormValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewFormService(db)
	ctx := context.Background()

	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")
	passive := testutil.SeedUser(t, db, "Pasif Çalışan", models.RoleCalisan, "")
	if err := db.Model(&models.User{}).Where("id = ?", passive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("kullanici pasiflestirilemedi: %v", err)
	}

	created, err := svc.CreateForm(ctx)
	if err != nil {
		t.Fatalf("CreateForm hata: %v", err)
	}
	formNo := created.Form.FormNo

	missing := uint(9999)
	if _, err := svc.AssignForm(ctx, formNo, &missing, &manager.ID); !errors.Is(err, ErrAssigneeNotFound) {
		t.Errorf("err = %v, want ErrAssigneeNotFound", err)
	}
	if _, err := svc.AssignForm(ctx, formNo, &manager.ID, &manager.ID); !errors.Is(err, ErrAssigneeNotAllowed) {
		t.Errorf("atayan role atama: err = %v, want ErrAssigneeNotAllowed", err)
	}
	if _, err := svc.AssignForm(ctx, formNo, &passive.ID, &manager.ID); !errors.Is(err, ErrAssigneeNotAllowed) {
		t.Errorf("pasif kullaniciya atama: err = %v, want ErrAssigneeNotAllowed", err)
	}
}
