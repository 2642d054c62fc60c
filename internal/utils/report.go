package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type DistributionReportData struct {
	OrganizationName string
	EventName        string
	GeneratedAt      time.Time
	VerifyBaseURL    string // contoh: https://certitrust.demo/#/verify/
	Rows             []ReportRow
}

type ReportRow struct {
	No                int
	CertificateNumber string
	RecipientName     string
	Role              string
	IssueDate         time.Time
}

// GenerateDistributionReport membuat rekap penerbitan satu acara sebagai PDF.
// Nomor sertifikat di tabel bisa diklik menuju halaman verifikasi publik.
func GenerateDistributionReport(data DistributionReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ─────────────────────────────────────────
	// HEADER
	// ─────────────────────────────────────────
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, data.OrganizationName, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 5, "Laporan Distribusi Sertifikat", "", 1, "C", false, 0, "")

	// Garis pembatas
	pdf.SetDrawColor(0, 51, 102)
	pdf.SetLineWidth(0.8)
	pdf.Line(20, pdf.GetY()+3, 190, pdf.GetY()+3)
	pdf.Ln(8)

	// ─────────────────────────────────────────
	// INFO ACARA
	// ─────────────────────────────────────────
	pdf.SetFont("Arial", "", 10)
	infoRows := [][]string{
		{"Nama Acara", data.EventName},
		{"Jumlah Sertifikat", fmt.Sprintf("%d", len(data.Rows))},
		{"Dibuat", data.GeneratedAt.Format("02/01/2006 15:04")},
	}
	for _, row := range infoRows {
		pdf.CellFormat(40, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(5, 6, ":", "", 0, "C", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ─────────────────────────────────────────
	// TABEL PENERIMA
	// ─────────────────────────────────────────
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)

	headers := []string{"No", "Nomor Sertifikat", "Nama Penerima", "Peran", "Tanggal"}
	widths := []float64{10, 55, 55, 25, 25}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)

	for i, row := range data.Rows {
		fillColor := i%2 == 0
		if fillColor {
			pdf.SetFillColor(240, 245, 255)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		link := data.VerifyBaseURL + row.CertificateNumber

		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", row.No), "1", 0, "C", fillColor, 0, "")
		pdf.CellFormat(widths[1], 6, truncate(row.CertificateNumber, 34), "1", 0, "L", fillColor, 0, link)
		pdf.CellFormat(widths[2], 6, truncate(row.RecipientName, 34), "1", 0, "L", fillColor, 0, "")
		pdf.CellFormat(widths[3], 6, row.Role, "1", 0, "C", fillColor, 0, "")
		pdf.CellFormat(widths[4], 6, row.IssueDate.Format("02/01/2006"), "1", 0, "C", fillColor, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(5)

	// ─────────────────────────────────────────
	// FOOTER
	// ─────────────────────────────────────────
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 7)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5,
		"Dokumen ini dibuat otomatis | Klik nomor sertifikat untuk membuka halaman verifikasi",
		"", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("gagal generate laporan: %w", err)
	}

	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
