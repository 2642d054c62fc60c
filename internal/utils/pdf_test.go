package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return buf.Bytes()
}

func TestImageToPDFLandscape(t *testing.T) {
	data := sampleJPEG(t, 400, 300)

	pdf, err := ImageToPDF(data, 400, 300)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, len(pdf), len(data)/2)
}

func TestImageToPDFPortrait(t *testing.T) {
	data := sampleJPEG(t, 300, 400)

	pdf, err := ImageToPDF(data, 300, 400)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateDistributionReport(t *testing.T) {
	report := DistributionReportData{
		OrganizationName: "Politeknik ATI Padang",
		EventName:        "Workshop Go",
		GeneratedAt:      time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		VerifyBaseURL:    "https://certitrust.demo/#/verify/",
		Rows: []ReportRow{
			{No: 1, CertificateNumber: "SRT-PST/2024/0001-123", RecipientName: "Budi Santoso", Role: "Participant", IssueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
			{No: 2, CertificateNumber: "SRT-NRS/2024/0001-456", RecipientName: "Siti Aminah", Role: "Speaker", IssueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	pdf, err := GenerateDistributionReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.NotEmpty(t, pdf)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "pendek", truncate("pendek", 10))
	assert.Equal(t, "sangat ...", truncate("sangat panjang sekali", 10))
}
