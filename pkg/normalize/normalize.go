// Package normalize arama anahtarı üretimi ve gevşek biçimli tarih/saat
// ayrıştırma yardımcılarını içerir. Aksanlı ve aksansız yazımların aynı
// alt dize aramasında eşleşmesi için Unicode NFKD ayrıştırması kullanılır.
package normalize

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ISODateLayout saklanan gölge tarih sütunlarının biçimi.
const ISODateLayout = "2006-01-02"

var dateLayouts = []string{"02.01.2006", ISODateLayout}

// Noktasız ı (U+0131) ayrık bir harftir, birleşik işaret taşımaz; NFKD
// zinciri ona dokunmaz. i'ye katlanması açıkça eşlenir ki "calışan" ve
// "calisan" aynı anahtara insin.
var dotlessIFold = runes.Map(func(r rune) rune {
	if r == 'ı' {
		return 'i'
	}
	return r
})

var foldTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	dotlessIFold,
	norm.NFC,
)

// SearchKey metni arama sütunları için normalize eder: kırpar, NFKD ile
// ayrıştırıp birleşik işaretleri (combining marks) atar ve küçük harfe çevirir.
// "İstanbul" ve "istanbul" aynı anahtara iner. Boş girdi boş dize döndürür.
func SearchKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ToISODate dd.mm.yyyy veya yyyy-mm-dd biçimindeki metni ISO-8601 tarihe
// çevirir. Ayrıştırılamayan girdi için boş dize döner; bu bir hata değildir,
// çağıran tarafın kaydı tarih filtrelemesinden hariç tutması beklenir.
func ToISODate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODateLayout)
		}
	}
	return ""
}

// CombineTimestamp tarih ve saat metnini tek bir zaman damgasında birleştirir.
// Her iki parça da mevcut ve ayrıştırılabilir olmalıdır; HH:MM biçimindeki
// saat için saniye 00 kabul edilir. Başarısızlıkta ok=false döner.
func CombineTimestamp(dateStr, timeStr string) (time.Time, bool) {
	iso := ToISODate(dateStr)
	if iso == "" {
		return time.Time{}, false
	}

	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(ISODateLayout+" "+layout, iso+" "+timeStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
