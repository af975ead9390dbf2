package services

import (
	"context"
	"errors"
	"testing"

	"deltaproje.app/models"
	"deltaproje.app/testutil"
)

func validRequestInput(requestedBy uint) TaskRequestInput {
	return TaskRequestInput{
		CustomerName:       "ABC Şirketi",
		CustomerPhone:      "0532 123 45 67",
		CustomerEmail:      "iletisim@abc.com",
		CustomerAddress:    "Ataşehir Plaza Kat:5",
		RequestDescription: "Klima arızası bildirildi, sistem soğutmuyor.",
		Requirements:       "2 teknisyen, R410A gazı",
		RequestedByUserID:  requestedBy,
	}
}

func TestTaskRequestServiceCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTaskRequestService(db)
	ctx := context.Background()

	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")

	row, err := svc.CreateRequest(ctx, validRequestInput(manager.ID))
	if err != nil {
		t.Fatalf("CreateRequest hata: %v", err)
	}
	if row.Status != models.RequestStatusPending {
		t.Errorf("yeni talep %q durumunda acilmali, %q geldi", models.RequestStatusPending, row.Status)
	}
	if row.Urgency != models.UrgencyNormal {
		t.Errorf("bos aciliyet normale cekilmeli: %q", row.Urgency)
	}
	if row.CustomerName != "ABC Şirketi" {
		t.Errorf("CustomerName = %q", row.CustomerName)
	}
	if row.RequestedByName != "Ahmet Yönetici" {
		t.Errorf("RequestedByName = %q", row.RequestedByName)
	}
}

func TestTaskRequestServiceCreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTaskRequestService(db)
	ctx := context.Background()

	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")

	tests := []struct {
		name   string
		mutate func(*TaskRequestInput)
	}{
		{"musteri adi eksik", func(in *TaskRequestInput) { in.CustomerName = "  " }},
		{"aciklama eksik", func(in *TaskRequestInput) { in.RequestDescription = "" }},
		{"talep eden eksik", func(in *TaskRequestInput) { in.RequestedByUserID = 0 }},
		{"gecersiz aciliyet", func(in *TaskRequestInput) { in.Urgency = "hemen" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRequestInput(manager.ID)
			tt.mutate(&in)
			if _, err := svc.CreateRequest(ctx, in); !errors.Is(err, ErrRequestValidation) {
				t.Errorf("err = %v, want ErrRequestValidation", err)
			}
		})
	}
}

func TestTaskRequestServiceListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTaskRequestService(db)
	ctx := context.Background()

	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")

	first, err := svc.CreateRequest(ctx, validRequestInput(manager.ID))
	if err != nil {
		t.Fatalf("CreateRequest hata: %v", err)
	}
	if _, err := svc.CreateRequest(ctx, validRequestInput(manager.ID)); err != nil {
		t.Fatalf("CreateRequest hata: %v", err)
	}
	if err := svc.UpdateStatus(ctx, first.ID, models.RequestStatusInProgress, nil); err != nil {
		t.Fatalf("UpdateStatus hata: %v", err)
	}

	pending, err := svc.ListRequests(ctx, models.RequestStatusPending)
	if err != nil {
		t.Fatalf("ListRequests hata: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("beklemede = %d, want 1", len(pending))
	}

	// Tanimsiz filtre yok sayilir, tum talepler doner.
	all, err := svc.ListRequests(ctx, "bilinmeyen")
	if err != nil {
		t.Fatalf("ListRequests hata: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("tum talepler = %d, want 2", len(all))
	}

	count, err := svc.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount hata: %v", err)
	}
	if count != 1 {
		t.Errorf("PendingCount = %d", count)
	}
}

func TestTaskRequestServiceStatusTransitions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTaskRequestService(db)
	ctx := context.Background()

	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")

	row, err := svc.CreateRequest(ctx, validRequestInput(manager.ID))
	if err != nil {
		t.Fatalf("CreateRequest hata: %v", err)
	}

	// Donusturuldu durumu UpdateStatus yolundan verilemez.
	if err := svc.UpdateStatus(ctx, row.ID, models.RequestStatusConverted, nil); !errors.Is(err, ErrRequestInvalidTransition) {
		t.Errorf("err = %v, want ErrRequestInvalidTransition", err)
	}

	if err := svc.UpdateStatus(ctx, row.ID, models.RequestStatusRejected, nil); err != nil {
		t.Fatalf("reddetme hata: %v", err)
	}

	// Reddedilen talep ucuncu duruma tasinamaz.
	if err := svc.UpdateStatus(ctx, row.ID, models.RequestStatusInProgress, nil); !errors.Is(err, ErrRequestInvalidTransition) {
		t.Errorf("terminal durumdan gecis: err = %v", err)
	}
}

func TestTaskRequestServiceMarkConverted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTaskRequestService(db)
	ctx := context.Background()

	manager := testutil.SeedUser(t, db, "Ahmet Yönetici", models.RoleAtayan, "parola123")

	row, err := svc.CreateRequest(ctx, validRequestInput(manager.ID))
	if err != nil {
		t.Fatalf("CreateRequest hata: %v", err)
	}

	if err := svc.MarkConverted(ctx, row.ID, ""); !errors.Is(err, ErrRequestValidation) {
		t.Errorf("bos form no: err = %v, want ErrRequestValidation", err)
	}

	if err := svc.MarkConverted(ctx, row.ID, "00042"); err != nil {
		t.Fatalf("MarkConverted hata: %v", err)
	}

	converted, err := svc.GetRequest(ctx, row.ID)
	if err != nil {
		t.Fatalf("GetRequest hata: %v", err)
	}
	if converted.Status != models.RequestStatusConverted {
		t.Errorf("durum = %q", converted.Status)
	}
	if converted.ConvertedFormNo != "00042" {
		t.Errorf("ConvertedFormNo = %q", converted.ConvertedFormNo)
	}
	if converted.ConvertedAt == nil {
		t.Error("ConvertedAt damgalanmali")
	}

	// Donusturulen talep ikinci kez donusturulemez.
	if err := svc.MarkConverted(ctx, row.ID, "00043"); !errors.Is(err, ErrRequestInvalidTransition) {
		t.Errorf("ikinci donusum: err = %v, want ErrRequestInvalidTransition", err)
	}
}

func TestTaskRequestServiceNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTaskRequestService(db)
	ctx := context.Background()

	if _, err := svc.GetRequest(ctx, 999); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("err = %v, want ErrRequestNotFound", err)
	}
	if err := svc.UpdateNotes(ctx, 999, "not"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("err = %v, want ErrRequestNotFound", err)
	}
}
