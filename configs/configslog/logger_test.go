package configslog

import "testing"

// Servis ve repo katmanları paket yüklenir yüklenmez loglayabilir;
// InitLogger çağrılmadan da loggerlar kullanılabilir olmalıdır.
func TestDefaultLoggerUsableBeforeInit(t *testing.T) {
	if Log == nil {
		t.Fatal("Log nil olmamalı")
	}
	if SLog == nil {
		t.Fatal("SLog nil olmamalı")
	}

	// Panik üretmeden yazılabilmeli.
	Log.Info("başlatma öncesi kayıt")
	SLog.Infof("başlatma öncesi kayıt: %s", "tamam")
}
