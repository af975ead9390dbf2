package services

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"deltaproje.app/models"
	"deltaproje.app/pkg/normalize"
)

// StringOrNumber JSON metni ya da JSON sayısı olarak gelebilen alanları ham
// metin olarak taşır; sayıya indirgeme BuildFormPayload içindeki coerce
// adımlarına bırakılır. Metin ve sayı dışındaki değerler boş kabul edilir.
type StringOrNumber string

func (v *StringOrNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringOrNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*v = ""
		return nil
	}
	*v = StringOrNumber(n.String())
	return nil
}

// FormInput sihirbaz adımlarından gelen ham, kısmen doldurulmuş form
// alanlarıdır. Tüm alanlar isteğe bağlıdır; sayısal ve koleksiyon alanları
// dahi metin ya da tipsiz değer olarak gelebilir. Alan temizliğine dair tüm
// iş kuralları BuildFormPayload içinde toplanır, çağıranlar ham değeri
// olduğu gibi iletir.
type FormInput struct {
	Tarih       string `json:"tarih"`
	DokNo       string `json:"dok_no"`
	RevNo       string `json:"rev_no"`
	Avans       string `json:"avans"`
	Taseron     string `json:"taseron"`
	GorevTanimi string `json:"gorev_tanimi"`

	GorevYeri  string `json:"gorev_yeri"`
	GorevIl    string `json:"gorev_il"`
	GorevIlce  string `json:"gorev_ilce"`
	GorevFirma string `json:"gorev_firma"`
	GorevTarih string `json:"gorev_tarih"`

	YapilanIsler string `json:"yapilan_isler"`

	// Ekler ve harcamalar ya çözülmüş liste ya da JSON kodlu metin olarak
	// gelebilir; aynı kayıt yüklenip yeniden kaydedildiğinde veri kaybı
	// olmaz (idempotent yeniden giriş).
	GorevEkleri         interface{} `json:"gorev_ekleri"`
	HarcamaBildirimleri interface{} `json:"harcama_bildirimleri"`

	YolaCikisTarih       string `json:"yola_cikis_tarih"`
	YolaCikisSaat        string `json:"yola_cikis_saat"`
	DonusTarih           string `json:"donus_tarih"`
	DonusSaat            string `json:"donus_saat"`
	CalismaBaslangicTarih string `json:"calisma_baslangic_tarih"`
	CalismaBaslangicSaat  string `json:"calisma_baslangic_saat"`
	CalismaBitisTarih     string `json:"calisma_bitis_tarih"`
	CalismaBitisSaat      string `json:"calisma_bitis_saat"`

	MolaSuresi string `json:"mola_suresi"`
	AracPlaka  string `json:"arac_plaka"`
	Hazirlayan string `json:"hazirlayan"`

	Personel1 string `json:"personel_1"`
	Personel2 string `json:"personel_2"`
	Personel3 string `json:"personel_3"`
	Personel4 string `json:"personel_4"`
	Personel5 string `json:"personel_5"`

	LastStep   StringOrNumber `json:"last_step"`
	AssignedTo StringOrNumber `json:"assigned_to"`
	AssignedBy StringOrNumber `json:"assigned_by"`

	// AssignedAt mağaza tarafından damgalanır; yükle-kaydet döngüsünde
	// kaybolmaması için olduğu gibi taşınır.
	AssignedAt *time.Time `json:"assigned_at"`
}

// BuildFormPayload ham form alanlarını saklanmaya hazır kanonik kayda
// dönüştürür. Saf bir fonksiyondur, I/O yapmaz. Her *_tarih alanı için ISO
// gölge sütunu türetilir; ayrıştırılamayan tarihler hata üretmeden boş gölge
// bırakır, çünkü yarım doldurulmuş formlar bu sistemin olağan halidir.
func BuildFormPayload(formNo string, in FormInput, durum string) models.Form {
	durum = strings.TrimSpace(durum)
	if durum == "" {
		durum = models.StatusYarim
	}

	form := models.Form{
		FormNo: strings.TrimSpace(formNo),

		Tarih:    strings.TrimSpace(in.Tarih),
		TarihISO: normalize.ToISODate(in.Tarih),
		DokNo:    strings.TrimSpace(in.DokNo),
		RevNo:    strings.TrimSpace(in.RevNo),

		Avans:       strings.TrimSpace(in.Avans),
		Taseron:     strings.TrimSpace(in.Taseron),
		GorevTanimi: strings.TrimSpace(in.GorevTanimi),

		GorevYeri:      strings.TrimSpace(in.GorevYeri),
		GorevYeriLower: normalize.SearchKey(in.GorevYeri),
		GorevIl:        strings.TrimSpace(in.GorevIl),
		GorevIlce:      strings.TrimSpace(in.GorevIlce),
		GorevFirma:     strings.TrimSpace(in.GorevFirma),
		GorevTarih:     strings.TrimSpace(in.GorevTarih),
		GorevTarihISO:  normalize.ToISODate(in.GorevTarih),

		YapilanIsler: strings.TrimSpace(in.YapilanIsler),

		GorevEkleri:         models.EncodeAttachments(coerceAttachments(in.GorevEkleri)),
		HarcamaBildirimleri: models.EncodeExpenseEntries(coerceExpenseEntries(in.HarcamaBildirimleri)),

		YolaCikisTarih:    strings.TrimSpace(in.YolaCikisTarih),
		YolaCikisTarihISO: normalize.ToISODate(in.YolaCikisTarih),
		YolaCikisSaat:     strings.TrimSpace(in.YolaCikisSaat),
		DonusTarih:        strings.TrimSpace(in.DonusTarih),
		DonusTarihISO:     normalize.ToISODate(in.DonusTarih),
		DonusSaat:         strings.TrimSpace(in.DonusSaat),

		CalismaBaslangicTarih:    strings.TrimSpace(in.CalismaBaslangicTarih),
		CalismaBaslangicTarihISO: normalize.ToISODate(in.CalismaBaslangicTarih),
		CalismaBaslangicSaat:     strings.TrimSpace(in.CalismaBaslangicSaat),
		CalismaBitisTarih:        strings.TrimSpace(in.CalismaBitisTarih),
		CalismaBitisTarihISO:     normalize.ToISODate(in.CalismaBitisTarih),
		CalismaBitisSaat:         strings.TrimSpace(in.CalismaBitisSaat),

		MolaSuresi: strings.TrimSpace(in.MolaSuresi),
		AracPlaka:  strings.TrimSpace(in.AracPlaka),
		Hazirlayan: strings.TrimSpace(in.Hazirlayan),
		Durum:      durum,

		Personel1: strings.TrimSpace(in.Personel1),
		Personel2: strings.TrimSpace(in.Personel2),
		Personel3: strings.TrimSpace(in.Personel3),
		Personel4: strings.TrimSpace(in.Personel4),
		Personel5: strings.TrimSpace(in.Personel5),

		LastStep: coerceStep(string(in.LastStep)),

		AssignedToUserID: coerceUserID(string(in.AssignedTo)),
		AssignedByUserID: coerceUserID(string(in.AssignedBy)),
		AssignedAt:       in.AssignedAt,
	}

	form.PersonelSearch = buildPersonelSearch(form.PersonelSlots())
	return form
}

// buildPersonelSearch boş olmayan personel adlarını slot sırasıyla
// normalize edip virgülle birleştirir.
func buildPersonelSearch(slots []string) string {
	keys := make([]string, 0, len(slots))
	for _, name := range slots {
		if key := normalize.SearchKey(name); key != "" {
			keys = append(keys, key)
		}
	}
	return strings.Join(keys, ",")
}

// coerceStep adım değerini negatif olmayan tam sayıya indirger; sayısal
// olmayan her girdi 0 kabul edilir.
func coerceStep(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// coerceUserID isteğe bağlı kullanıcı referansını int-veya-null'a çevirir;
// boş dize null demektir.
func coerceUserID(raw string) *uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// coerceAttachments tipsiz ek değerini listeye indirger: çözülmüş liste,
// JSON kodlu metin veya hiç olmayabilir. Bozuk biçim boş liste sayılır.
func coerceAttachments(raw interface{}) []models.Attachment {
	switch v := raw.(type) {
	case nil:
		return []models.Attachment{}
	case string:
		return models.DecodeAttachments(v)
	case []models.Attachment:
		return models.DecodeAttachments(models.EncodeAttachments(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return []models.Attachment{}
		}
		return models.DecodeAttachments(string(data))
	}
}

// coerceExpenseEntries harcama bildirimlerini aynı kurallarla indirger.
func coerceExpenseEntries(raw interface{}) []models.ExpenseEntry {
	switch v := raw.(type) {
	case nil:
		return []models.ExpenseEntry{}
	case string:
		return models.DecodeExpenseEntries(v)
	case []models.ExpenseEntry:
		return models.DecodeExpenseEntries(models.EncodeExpenseEntries(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return []models.ExpenseEntry{}
		}
		return models.DecodeExpenseEntries(string(data))
	}
}
