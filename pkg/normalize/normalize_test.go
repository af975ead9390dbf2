package normalize

import (
	"testing"
	"time"
)

func TestSearchKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bos girdi", "", ""},
		{"yalnizca bosluk", "   ", ""},
		{"kucuk harfe iner", "ANKARA", "ankara"},
		{"kirpar", "  Mehmet  ", "mehmet"},
		{"noktali i sadelesir", "İstanbul", "istanbul"},
		{"turkce aksanlar dusur", "Gülşah Öztürk", "gulsah ozturk"},
		{"sapkali unluler", "Kâzım", "kazim"},
		{"noktasiz i katlanir", "Çalışan Işık", "calisan isik"},
		{"aksansiz metin aynen", "delta proje", "delta proje"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchKey(tt.in); got != tt.want {
				t.Errorf("SearchKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToISODate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bos girdi", "", ""},
		{"gg.aa.yyyy", "05.03.2025", "2025-03-05"},
		{"zaten iso", "2025-03-05", "2025-03-05"},
		{"kirpilmis girdi", " 05.03.2025 ", "2025-03-05"},
		{"gecersiz bicim", "5 Mart 2025", ""},
		{"gecersiz gun", "32.01.2025", ""},
		{"yari dolu", "03.2025", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToISODate(tt.in); got != tt.want {
				t.Errorf("ToISODate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCombineTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		timeStr string
		want    time.Time
		ok      bool
	}{
		{"gosterim bicimi", "05.03.2025", "08:30", time.Date(2025, 3, 5, 8, 30, 0, 0, time.UTC), true},
		{"iso bicimi", "2025-03-05", "17:45", time.Date(2025, 3, 5, 17, 45, 0, 0, time.UTC), true},
		{"saniyeli saat", "05.03.2025", "08:30:15", time.Date(2025, 3, 5, 8, 30, 15, 0, time.UTC), true},
		{"tarih yok", "", "08:30", time.Time{}, false},
		{"saat yok", "05.03.2025", "", time.Time{}, false},
		{"gecersiz saat", "05.03.2025", "25:00", time.Time{}, false},
		{"gecersiz tarih", "kayit yok", "08:30", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CombineTimestamp(tt.dateStr, tt.timeStr)
			if ok != tt.ok {
				t.Fatalf("CombineTimestamp(%q, %q) ok = %v, want %v", tt.dateStr, tt.timeStr, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("CombineTimestamp(%q, %q) = %v, want %v", tt.dateStr, tt.timeStr, got, tt.want)
			}
		})
	}
}
