package models

import "time"

// Form durum kodları. Saklanan durum bir önbellektir; gösterim yolundaki
// her okuma durumu zorunlu alanlardan yeniden hesaplar.
const (
	StatusTamamlandi = "TAMAMLANDI"
	StatusYarim      = "YARIM"
)

// Form çok adımlı sihirbazla doldurulan görev formu ana kaydıdır.
// form_no atandıktan sonra değişmez ve dışarıya açılan tek kimliktir;
// numaralar 5 haneye sıfır dolgulu üretilir ama zamanla dolgu genişliğini
// aşabileceği için listelemelerde her zaman sayısal sıralama kullanılır.
// *_tarih alanları dd.mm.yyyy gösterim biçimindedir; her birinin yalnızca
// sıralama/filtreleme için kullanılan *_tarih_iso gölge sütunu vardır.
type Form struct {
	BaseModel
	FormNo string `gorm:"type:varchar(20);uniqueIndex;not null" json:"form_no"`

	Tarih    string `gorm:"type:varchar(20)" json:"tarih"`
	TarihISO string `gorm:"column:tarih_iso;type:varchar(10)" json:"tarih_iso"`
	DokNo    string `gorm:"type:varchar(50)" json:"dok_no"`
	RevNo    string `gorm:"type:varchar(50)" json:"rev_no"`

	Avans       string `gorm:"type:varchar(50)" json:"avans"`
	Taseron     string `gorm:"type:varchar(255)" json:"taseron"`
	GorevTanimi string `gorm:"type:text" json:"gorev_tanimi"`

	GorevYeri      string `gorm:"type:varchar(255)" json:"gorev_yeri"`
	GorevYeriLower string `gorm:"type:varchar(255);index" json:"gorev_yeri_lower"` // normalize edilmiş konum arama anahtarı
	GorevIl        string `gorm:"type:varchar(100)" json:"gorev_il"`
	GorevIlce      string `gorm:"type:varchar(100)" json:"gorev_ilce"`
	GorevFirma     string `gorm:"type:varchar(255)" json:"gorev_firma"`
	GorevTarih     string `gorm:"type:varchar(20)" json:"gorev_tarih"`
	GorevTarihISO  string `gorm:"column:gorev_tarih_iso;type:varchar(10);index" json:"gorev_tarih_iso"`

	YapilanIsler string `gorm:"type:text" json:"yapilan_isler"`

	// JSON kodlu alt koleksiyonlar; API sınırında tipli listelere çözülür.
	GorevEkleri         string `gorm:"type:text" json:"gorev_ekleri"`
	HarcamaBildirimleri string `gorm:"type:text" json:"harcama_bildirimleri"`

	YolaCikisTarih    string `gorm:"type:varchar(20)" json:"yola_cikis_tarih"`
	YolaCikisTarihISO string `gorm:"column:yola_cikis_tarih_iso;type:varchar(10);index" json:"yola_cikis_tarih_iso"`
	YolaCikisSaat     string `gorm:"type:varchar(10)" json:"yola_cikis_saat"`
	DonusTarih        string `gorm:"type:varchar(20)" json:"donus_tarih"`
	DonusTarihISO     string `gorm:"column:donus_tarih_iso;type:varchar(10)" json:"donus_tarih_iso"`
	DonusSaat         string `gorm:"type:varchar(10)" json:"donus_saat"`

	CalismaBaslangicTarih    string `gorm:"type:varchar(20)" json:"calisma_baslangic_tarih"`
	CalismaBaslangicTarihISO string `gorm:"column:calisma_baslangic_tarih_iso;type:varchar(10)" json:"calisma_baslangic_tarih_iso"`
	CalismaBaslangicSaat     string `gorm:"type:varchar(10)" json:"calisma_baslangic_saat"`
	CalismaBitisTarih        string `gorm:"type:varchar(20)" json:"calisma_bitis_tarih"`
	CalismaBitisTarihISO     string `gorm:"column:calisma_bitis_tarih_iso;type:varchar(10)" json:"calisma_bitis_tarih_iso"`
	CalismaBitisSaat         string `gorm:"type:varchar(10)" json:"calisma_bitis_saat"`

	MolaSuresi string `gorm:"type:varchar(20)" json:"mola_suresi"`
	AracPlaka  string `gorm:"type:varchar(50)" json:"arac_plaka"`
	Hazirlayan string `gorm:"type:varchar(255)" json:"hazirlayan"`
	Durum      string `gorm:"type:varchar(20);index" json:"durum"`

	Personel1      string `gorm:"column:personel_1;type:varchar(255)" json:"personel_1"`
	Personel2      string `gorm:"column:personel_2;type:varchar(255)" json:"personel_2"`
	Personel3      string `gorm:"column:personel_3;type:varchar(255)" json:"personel_3"`
	Personel4      string `gorm:"column:personel_4;type:varchar(255)" json:"personel_4"`
	Personel5      string `gorm:"column:personel_5;type:varchar(255)" json:"personel_5"`
	PersonelSearch string `gorm:"type:text" json:"personel_search"` // normalize edilmiş, virgülle birleşik personel adları

	LastStep int `gorm:"default:0" json:"last_step"` // sihirbaz kaldığı yer; [0, adım sayısı-1] aralığına kenetlenir

	AssignedToUserID *uint      `gorm:"index" json:"assigned_to_user_id"`
	AssignedByUserID *uint      `json:"assigned_by_user_id"`
	AssignedAt       *time.Time `json:"assigned_at"`
}

// PersonelSlots personel alanlarını slot sırasıyla döndürür.
func (f Form) PersonelSlots() []string {
	return []string{f.Personel1, f.Personel2, f.Personel3, f.Personel4, f.Personel5}
}

// FormSequence tekil sayaç kaydıdır; bir sonraki form numarası buradan
// üretilir. Tabloda her zaman id=1 olan tek satır bulunur.
type FormSequence struct {
	ID     uint  `gorm:"primarykey"`
	LastNo int64 `gorm:"not null;default:0"`
}

// TableName sayaç tablosunun adı.
func (FormSequence) TableName() string {
	return "form_sequence"
}
