package models

import "time"

// Görev talebi durumları. Akış pending → in_progress → {converted, rejected}
// şeklindedir; pending'e geri dönüş yoktur ve converted'a geçiş converted_form_no
// ile birlikte tam bir kez yapılır.
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in_progress"
	RequestStatusConverted  = "converted"
	RequestStatusRejected   = "rejected"
)

// Aciliyet seviyeleri.
const (
	UrgencyNormal     = "normal"
	UrgencyUrgent     = "urgent"
	UrgencyVeryUrgent = "very_urgent"
)

// RequestStatusLabels durumların ekran etiketleri.
var RequestStatusLabels = map[string]string{
	RequestStatusPending:    "Beklemede",
	RequestStatusInProgress: "İncelemede",
	RequestStatusConverted:  "Göreve Dönüştürüldü",
	RequestStatusRejected:   "Reddedildi",
}

// UrgencyLabels aciliyet seviyelerinin ekran etiketleri.
var UrgencyLabels = map[string]string{
	UrgencyNormal:     "Normal",
	UrgencyUrgent:     "Acil",
	UrgencyVeryUrgent: "Çok Acil",
}

// TaskRequest müşteriden gelen, göreve dönüştürülebilen talep kaydıdır.
type TaskRequest struct {
	BaseModel
	CustomerName       string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone      string `gorm:"type:varchar(32)" json:"customer_phone"`
	CustomerEmail      string `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerAddress    string `gorm:"type:text" json:"customer_address"`
	RequestDescription string `gorm:"type:text;not null" json:"request_description"`
	Requirements       string `gorm:"type:text" json:"requirements"`
	Urgency            string `gorm:"type:varchar(20);default:normal" json:"urgency"`
	RequestedByUserID  uint   `gorm:"not null;index" json:"requested_by_user_id"`
	Status             string `gorm:"type:varchar(20);default:pending;index" json:"status"`
	Notes              string `gorm:"type:text" json:"notes"`
	AssignedToUserID   *uint  `gorm:"index" json:"assigned_to_user_id"`
	ConvertedFormNo    string `gorm:"type:varchar(20)" json:"converted_form_no"`
	ConvertedAt        *time.Time `json:"converted_at"`
}

// IsValidRequestStatus durum değerinin tanımlı kümede olup olmadığını söyler.
func IsValidRequestStatus(status string) bool {
	switch status {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusConverted, RequestStatusRejected:
		return true
	}
	return false
}

// IsValidUrgency aciliyet değerinin tanımlı kümede olup olmadığını söyler.
func IsValidUrgency(urgency string) bool {
	switch urgency {
	case UrgencyNormal, UrgencyUrgent, UrgencyVeryUrgent:
		return true
	}
	return false
}

// CanTransitionRequestStatus mevcut durumdan hedef duruma geçişe izin verilip
// verilmediğini söyler. converted ve rejected uç durumlardır.
func CanTransitionRequestStatus(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case RequestStatusPending:
		return to == RequestStatusInProgress || to == RequestStatusConverted || to == RequestStatusRejected
	case RequestStatusInProgress:
		return to == RequestStatusConverted || to == RequestStatusRejected
	}
	return false
}
