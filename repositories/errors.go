package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound aranan kayıt bulunamadığında tüm repolardan dönen ortak hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

type ctxKey string

// txContextKey servis katmanının transaction'ı repolara taşımak için
// kullandığı context anahtarı.
const txContextKey ctxKey = "tx"

// ContextWithTx verilen transaction'ı context'e bağlar; aynı context ile
// çağrılan tüm repo metodları bu transaction üzerinde çalışır.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// dbFromContext context'te transaction varsa onu, yoksa verilen bağlantıyı
// context ile sarmalayarak döndürür.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
