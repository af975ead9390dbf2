package models

import (
	"encoding/json"
	"strings"
)

// Attachment yüklenmiş bir dosyayı temsil eder. Dosya baytlarını kaydeden
// işbirlikçi katman {filename, original_name} çiftini hazır olarak verir.
type Attachment struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

// ExpenseEntry bir harcama bildirimini ve kendi eklerini tutar.
type ExpenseEntry struct {
	Description string       `json:"description"`
	Attachments []Attachment `json:"attachments"`
}

// Ek koleksiyonları forms tablosunda düz metin sütunlarında JSON olarak
// saklanır. Kodlama/çözme sınırı bu dosyadadır; çözülmüş veri tipli dilimler
// olarak taşınır, aşağı akış kodu JSON'u yeniden ayrıştırmaz.

// EncodeAttachments ek listesini saklanacak JSON metnine çevirir.
func EncodeAttachments(items []Attachment) string {
	if items == nil {
		items = []Attachment{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeAttachments saklanan JSON metnini ek listesine çözer. Bozuk JSON
// veya liste biçiminde olmayan girdi hata değildir; boş liste döner.
func DecodeAttachments(raw string) []Attachment {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Attachment{}
	}
	var items []Attachment
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []Attachment{}
	}
	return sanitizeAttachments(items)
}

// EncodeExpenseEntries harcama bildirimlerini saklanacak JSON metnine çevirir.
func EncodeExpenseEntries(items []ExpenseEntry) string {
	if items == nil {
		items = []ExpenseEntry{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeExpenseEntries saklanan JSON metnini harcama listesine çözer.
// Bozuk girdi boş liste olarak değerlendirilir.
func DecodeExpenseEntries(raw string) []ExpenseEntry {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []ExpenseEntry{}
	}
	var items []ExpenseEntry
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []ExpenseEntry{}
	}
	return sanitizeExpenseEntries(items)
}

// sanitizeAttachments her eki {filename, original_name} biçimine indirger:
// filename boşsa ek atılır, original_name boşsa filename kullanılır.
func sanitizeAttachments(items []Attachment) []Attachment {
	cleaned := make([]Attachment, 0, len(items))
	for _, item := range items {
		filename := strings.TrimSpace(item.Filename)
		if filename == "" {
			continue
		}
		original := strings.TrimSpace(item.OriginalName)
		if original == "" {
			original = filename
		}
		cleaned = append(cleaned, Attachment{Filename: filename, OriginalName: original})
	}
	return cleaned
}

// sanitizeExpenseEntries açıklamayı kırpar ve her girdinin eklerini aynı
// kurala göre temizler.
func sanitizeExpenseEntries(items []ExpenseEntry) []ExpenseEntry {
	cleaned := make([]ExpenseEntry, 0, len(items))
	for _, item := range items {
		cleaned = append(cleaned, ExpenseEntry{
			Description: strings.TrimSpace(item.Description),
			Attachments: sanitizeAttachments(item.Attachments),
		})
	}
	return cleaned
}
