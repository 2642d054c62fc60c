package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ahmadqo/certitrust/internal/model"
)

func TestResolveTextFields(t *testing.T) {
	date := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	data := Data{
		CertificateNumber: "SRT-PST/2024/0001-123",
		RecipientName:     "Budi Santoso",
		RecipientRole:     "Narasumber",
		EventName:         "Workshop AI",
		IssueDate:         date,
		Language:          model.LanguageID,
		CustomText:        "Apresiasi setinggi-tingginya",
	}

	tests := []struct {
		key  model.FieldKey
		want string
	}{
		{model.FieldRecipientName, "Budi Santoso"},
		{model.FieldRecipientRole, "Narasumber"},
		{model.FieldEventName, "Workshop AI"},
		{model.FieldIssueDate, "20 Mei 2024"},
		{model.FieldCertificateNumber, "SRT-PST/2024/0001-123"},
		{model.FieldCustomText, "Apresiasi setinggi-tingginya"},
	}
	for _, tt := range tests {
		got, img := resolveField(model.Field{Key: tt.key}, data, "")
		assert.Nil(t, img)
		assert.Equal(t, tt.want, got, "key %s", tt.key)
	}
}

func TestResolvePlaceholders(t *testing.T) {
	tests := []struct {
		key  model.FieldKey
		lang model.Language
		want string
	}{
		{model.FieldRecipientName, model.LanguageEN, "Recipient Name"},
		{model.FieldEventName, model.LanguageEN, "Event Name"},
		{model.FieldCertificateNumber, model.LanguageEN, "NO-000000"},
		{model.FieldRecipientRole, model.LanguageEN, "Participant"},
		{model.FieldRecipientRole, model.LanguageID, "Peserta"},
		{model.FieldCustomText, model.LanguageEN, "For outstanding contribution"},
		{model.FieldCustomText, model.LanguageID, "Atas kontribusi yang luar biasa"},
	}
	for _, tt := range tests {
		got, _ := resolveField(model.Field{Key: tt.key}, Data{Language: tt.lang}, "")
		assert.Equal(t, tt.want, got, "key %s lang %s", tt.key, tt.lang)
	}
}

func TestResolveUnknownKeyFallsBackToLabel(t *testing.T) {
	got, img := resolveField(model.Field{Key: "signature", Label: "Tanda Tangan"}, Data{}, "")
	assert.Nil(t, img)
	assert.Equal(t, "Tanda Tangan", got)
}

func TestResolveQRVerification(t *testing.T) {
	field := model.Field{Key: model.FieldQRVerification}

	got, img := resolveField(field, Data{CertificateNumber: "ABC/2024/0001-001"}, "https://sertifikat.example.com")
	assert.Empty(t, got)
	assert.Equal(t, "https://sertifikat.example.com/#/verify/ABC/2024/0001-001", img.URL)

	// origin tidak tersedia -> demo origin, nomor kosong -> demo
	_, img = resolveField(field, Data{}, "null")
	assert.Equal(t, "https://certitrust.demo/#/verify/demo", img.URL)
}

func TestFormatLongDate(t *testing.T) {
	date := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "January 5, 2024", FormatLongDate(date, model.LanguageEN))
	assert.Equal(t, "5 Januari 2024", FormatLongDate(date, model.LanguageID))
}

func TestDataFromCertificate(t *testing.T) {
	role := "Panitia"
	cert := &model.Certificate{
		CertificateNumber: "X/0001-001",
		RecipientName:     "Ani",
		RecipientRole:     &role,
		EventName:         "Seminar",
		Language:          model.LanguageEN,
	}
	d := DataFromCertificate(cert)
	assert.Equal(t, "Ani", d.RecipientName)
	assert.Equal(t, "Panitia", d.RecipientRole)
	assert.Empty(t, d.CustomText)
}
