package render

import (
	"fmt"
	"time"

	"github.com/ahmadqo/certitrust/internal/model"
)

// DemoOrigin dipakai saat origin runtime tidak tersedia.
const DemoOrigin = "https://certitrust.demo"

// Data adalah nilai-nilai yang dirender ke canvas. Semua field boleh kosong;
// resolver mengganti yang kosong dengan placeholder sesuai bahasa (dipakai
// untuk live preview dengan data belum lengkap).
type Data struct {
	CertificateNumber string
	RecipientName     string
	RecipientRole     string
	EventName         string
	IssueDate         time.Time
	Language          model.Language
	CustomText        string
}

// DataFromCertificate mengisi Data dari record sertifikat.
func DataFromCertificate(c *model.Certificate) Data {
	d := Data{
		CertificateNumber: c.CertificateNumber,
		RecipientName:     c.RecipientName,
		EventName:         c.EventName,
		IssueDate:         c.IssueDate,
		Language:          c.Language,
	}
	if c.RecipientRole != nil {
		d.RecipientRole = *c.RecipientRole
	}
	if c.CustomText != nil {
		d.CustomText = *c.CustomText
	}
	return d
}

// ImageRequest diminta oleh field qr_verification: bukan teks, melainkan
// permintaan gambar QR yang meng-encode URL verifikasi.
type ImageRequest struct {
	URL string
}

// VerifyURL membentuk URL verifikasi publik. Origin kosong atau literal
// "null" jatuh ke DemoOrigin; nomor kosong memakai "demo".
func VerifyURL(origin, certificateNumber string) string {
	if origin == "" || origin == "null" {
		origin = DemoOrigin
	}
	if certificateNumber == "" {
		certificateNumber = "demo"
	}
	return fmt.Sprintf("%s/#/verify/%s", origin, certificateNumber)
}

// resolveField memetakan key field ke string tampilan, atau ImageRequest
// untuk qr_verification. Murni tanpa side effect untuk semua key teks.
func resolveField(field model.Field, data Data, origin string) (string, *ImageRequest) {
	lang := data.Language
	if lang == "" {
		lang = model.LanguageEN
	}

	switch field.Key {
	case model.FieldRecipientName:
		return orDefault(data.RecipientName, "Recipient Name"), nil
	case model.FieldRecipientRole:
		if lang == model.LanguageID {
			return orDefault(data.RecipientRole, "Peserta"), nil
		}
		return orDefault(data.RecipientRole, "Participant"), nil
	case model.FieldEventName:
		return orDefault(data.EventName, "Event Name"), nil
	case model.FieldIssueDate:
		date := data.IssueDate
		if date.IsZero() {
			date = time.Now()
		}
		return FormatLongDate(date, lang), nil
	case model.FieldCertificateNumber:
		return orDefault(data.CertificateNumber, "NO-000000"), nil
	case model.FieldCustomText:
		if lang == model.LanguageID {
			return orDefault(data.CustomText, "Atas kontribusi yang luar biasa"), nil
		}
		return orDefault(data.CustomText, "For outstanding contribution"), nil
	case model.FieldQRVerification:
		return "", &ImageRequest{URL: VerifyURL(origin, data.CertificateNumber)}
	default:
		// label statis sebagai fallback
		return field.Label, nil
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var bulan = [...]string{"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember"}

// FormatLongDate memformat tanggal bentuk panjang: "January 2, 2006" untuk
// EN, "2 Januari 2006" untuk ID.
func FormatLongDate(t time.Time, lang model.Language) string {
	if lang == model.LanguageID {
		return fmt.Sprintf("%d %s %d", t.Day(), bulan[t.Month()], t.Year())
	}
	return t.Format("January 2, 2006")
}
