package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log uygulama genelinde kullanılan yapılandırılmış logger. InitLogger
// çağrılana dek sessiz (no-op) bir logger'dır; loglayan kod hiçbir zaman
// nil logger ile karşılaşmaz.
var Log = zap.NewNop()

// SLog printf tarzı loglama için sugared logger.
var SLog = Log.Sugar()

// InitLogger global loggerları başlatır. APP_ENV=production ise JSON,
// aksi halde okunabilir konsol çıktısı kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic("zap logger oluşturulamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger bekleyen log kayıtlarını flush eder. main içinde defer ile çağrılır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
