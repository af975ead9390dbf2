package services

import (
	"testing"

	"deltaproje.app/models"
)

func TestClampStep(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{4, 4},
		{TotalSteps() - 1, TotalSteps() - 1},
		{TotalSteps(), TotalSteps() - 1},
		{100, TotalSteps() - 1},
	}
	for _, tt := range tests {
		if got := ClampStep(tt.in); got != tt.want {
			t.Errorf("ClampStep(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStepIDAt(t *testing.T) {
	if got := StepIDAt(0); got != "form_bilgileri" {
		t.Errorf("ilk adim = %q", got)
	}
	if got := StepIDAt(TotalSteps() - 1); got != FinalStepID {
		t.Errorf("son adim = %q, want %q", got, FinalStepID)
	}
	if got := StepIDAt(999); got != FinalStepID {
		t.Errorf("tasan indeks son adima kenetlenmeli, %q geldi", got)
	}
}

func TestCanEditStep(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		stepID     string
		isAssignee bool
		want       bool
	}{
		{"admin her adimi duzenler", models.RoleAdmin, "form_bilgileri", false, true},
		{"atayan her adimi duzenler", models.RoleAtayan, FinalStepID, false, true},
		{"calisan atanmissa son adim", models.RoleCalisan, FinalStepID, true, true},
		{"calisan atanmamissa son adim bile yasak", models.RoleCalisan, FinalStepID, false, false},
		{"calisan ara adim yasak", models.RoleCalisan, "saat_bilgileri", true, false},
		{"bilinmeyen rol yasak", "misafir", "form_bilgileri", true, false},
		{"bos rol yasak", "", FinalStepID, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditStep(tt.role, tt.stepID, tt.isAssignee); got != tt.want {
				t.Errorf("CanEditStep(%q, %q, %v) = %v, want %v", tt.role, tt.stepID, tt.isAssignee, got, tt.want)
			}
		})
	}
}

func TestLockSet(t *testing.T) {
	locks := NewLockSet()
	if locks.IsLocked("00001") {
		t.Fatal("yeni kume bos olmali")
	}

	locks.Lock("00001")
	if !locks.IsLocked("00001") {
		t.Error("kilitlenen form kilitli gorunmeli")
	}
	if locks.IsLocked("00002") {
		t.Error("baska form etkilenmemeli")
	}

	locks.Unlock("00001")
	if locks.IsLocked("00001") {
		t.Error("kilidi acilan form kilitli kalmamali")
	}

	// Var olmayan kaydin kilidini acmak panik uretmemeli.
	locks.Unlock("00099")
}
