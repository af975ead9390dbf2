package models

// Kullanıcı rolleri. Sadece "calisan" rolü personel slotlarına ve
// form atamalarına konu olabilir.
const (
	RoleAdmin   = "admin"
	RoleAtayan  = "atayan"
	RoleCalisan = "calisan"
)

// User sistemdeki bir kullanıcıyı temsil eder. Kimlik doğrulama taşıma
// katmanı (oturum/JWT) bu çekirdeğin dışındadır; burada yalnızca rol ve
// parola özeti saklanır.
type User struct {
	BaseModel
	FullName     string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(32)"`
	PasswordHash string `gorm:"type:varchar(255)"`
	Role         string `gorm:"type:varchar(20);not null;index"`
	IsActive     bool   `gorm:"default:true;index"`
}

// RequiresPassword admin ve atayan rollerinin parola ile giriş yapması gerekir.
func (u User) RequiresPassword() bool {
	return u.Role == RoleAdmin || u.Role == RoleAtayan
}

// IsValidRole rol değerinin tanımlı kümede olup olmadığını söyler.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAtayan, RoleCalisan:
		return true
	}
	return false
}
