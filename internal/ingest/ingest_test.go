package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadqo/certitrust/internal/model"
)

func TestParseManualText(t *testing.T) {
	text := "Budi Santoso, Peserta, budi@email.com\n" +
		"\n" +
		"Ani Wijaya, Narasumber\n" +
		"Citra Lestari"

	got := ParseManualText(text, model.LanguageID)
	require.Len(t, got, 3)

	assert.Equal(t, model.Recipient{Name: "Budi Santoso", Role: "Peserta", Email: "budi@email.com"}, got[0])
	assert.Equal(t, model.Recipient{Name: "Ani Wijaya", Role: "Narasumber"}, got[1])
	assert.Equal(t, model.Recipient{Name: "Citra Lestari", Role: "Peserta"}, got[2])
}

func TestParseManualTextSwappedEmailAndRole(t *testing.T) {
	got := ParseManualText("Budi, budi@email.com, Panitia", model.LanguageEN)
	require.Len(t, got, 1)
	assert.Equal(t, "Panitia", got[0].Role)
	assert.Equal(t, "budi@email.com", got[0].Email)

	got = ParseManualText("Budi, budi@email.com", model.LanguageEN)
	require.Len(t, got, 1)
	assert.Equal(t, "Participant", got[0].Role)
	assert.Equal(t, "budi@email.com", got[0].Email)
}

func TestParseRecipientsCSVWithHeader(t *testing.T) {
	csv := "Nama,Peran,Email\n" +
		"Budi Santoso,Peserta,budi@email.com\n" +
		"Ani Wijaya,Narasumber,\n"

	got, err := ParseRecipientsCSV(strings.NewReader(csv), model.LanguageID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Budi Santoso", got[0].Name)
	assert.Equal(t, "budi@email.com", got[0].Email)
	assert.Equal(t, "Narasumber", got[1].Role)
}

func TestParseRecipientsCSVWithoutHeader(t *testing.T) {
	csv := "Budi Santoso,Peserta\nAni Wijaya,"

	got, err := ParseRecipientsCSV(strings.NewReader(csv), model.LanguageEN)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Peserta", got[0].Role)
	assert.Equal(t, "Participant", got[1].Role, "peran kosong memakai default bahasa")
}

func TestParseRecipientsCSVEmpty(t *testing.T) {
	_, err := ParseRecipientsCSV(strings.NewReader(""), model.LanguageID)
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestGuessMapping(t *testing.T) {
	m := GuessMapping([]string{"Nomor Sertifikat", "Nama Lengkap", "Email", "Peran", "Kegiatan", "Tanggal Terbit"})
	assert.Equal(t, "Nomor Sertifikat", m.CertificateNumber)
	assert.Equal(t, "Nama Lengkap", m.RecipientName)
	assert.Equal(t, "Email", m.RecipientEmail)
	assert.Equal(t, "Peran", m.RecipientRole)
	assert.Equal(t, "Kegiatan", m.EventName)
	assert.Equal(t, "Tanggal Terbit", m.IssueDate)
}

func TestParseLegacyCSV(t *testing.T) {
	csv := "No,Nama,Acara\n" +
		"SKP/2019/001,Budi,Seminar Nasional\n" +
		"baris,rusak\n" +
		"SKP/2019/002,Ani,Seminar Nasional\n"

	records, err := ParseLegacyCSV(strings.NewReader(csv), ColumnMapping{
		CertificateNumber: "No",
		RecipientName:     "Nama",
		EventName:         "Acara",
	})
	require.NoError(t, err)
	require.Len(t, records, 2, "baris dengan jumlah kolom beda dilewati")
	assert.Equal(t, "SKP/2019/001", records[0].CertificateNumber)
	assert.Equal(t, "Ani", records[1].RecipientName)
	assert.Empty(t, records[0].RecipientRole)
}
