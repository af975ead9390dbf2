package configs

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config uygulamanın çalışma zamanı ayarlarını tutar.
type Config struct {
	DatabaseURL string
	ListenAddr  string
}

// Load .env dosyasını (varsa) ve ortam değişkenlerini okuyarak Config döndürür.
// DATABASE_URL boşsa yerel SQLite dosyası kullanılır.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:  strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "gorev_formlari.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}

	return cfg
}

// IsPostgres DATABASE_URL'in PostgreSQL'i işaret edip etmediğini söyler.
// Aksi halde değer SQLite dosya yolu olarak yorumlanır.
func (c Config) IsPostgres() bool {
	u := c.DatabaseURL
	return strings.HasPrefix(u, "postgres://") ||
		strings.HasPrefix(u, "postgresql://") ||
		strings.Contains(u, "host=")
}
