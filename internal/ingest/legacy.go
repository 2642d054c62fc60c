package ingest

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/ahmadqo/certitrust/internal/model"
)

// ColumnMapping memetakan field sistem ke nama header CSV data lama.
type ColumnMapping struct {
	CertificateNumber string `json:"certificate_number"`
	RecipientName     string `json:"recipient_name"`
	RecipientEmail    string `json:"recipient_email"`
	RecipientRole     string `json:"recipient_role"`
	EventName         string `json:"event_name"`
	IssueDate         string `json:"issue_date"`
}

// GuessMapping menebak mapping dari nama-nama header.
func GuessMapping(headers []string) ColumnMapping {
	var m ColumnMapping
	for _, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, "nomor") || strings.Contains(lower, "number") || strings.Contains(lower, "no"):
			if m.CertificateNumber == "" {
				m.CertificateNumber = h
			}
		case strings.Contains(lower, "nama") || strings.Contains(lower, "name"):
			if m.RecipientName == "" {
				m.RecipientName = h
			}
		case strings.Contains(lower, "email") || strings.Contains(lower, "surel") || strings.Contains(lower, "mail"):
			m.RecipientEmail = h
		case strings.Contains(lower, "peran") || strings.Contains(lower, "role") || strings.Contains(lower, "status"):
			m.RecipientRole = h
		case strings.Contains(lower, "acara") || strings.Contains(lower, "event") || strings.Contains(lower, "kegiatan"):
			m.EventName = h
		case strings.Contains(lower, "tanggal") || strings.Contains(lower, "date"):
			m.IssueDate = h
		}
	}
	return m
}

// ParseLegacyCSV membaca CSV arsip lama sesuai mapping kolom. Baris yang
// jumlah kolomnya tidak sama dengan header dilewati.
func ParseLegacyCSV(r io.Reader, mapping ColumnMapping) ([]model.ImportRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyCSV
	}

	headers := rows[0]
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	pick := func(row []string, header string) string {
		i, ok := index[header]
		if !ok {
			return ""
		}
		return cell(row, i)
	}

	var records []model.ImportRecord
	for _, row := range rows[1:] {
		if len(row) != len(headers) {
			continue
		}
		records = append(records, model.ImportRecord{
			CertificateNumber: pick(row, mapping.CertificateNumber),
			RecipientName:     pick(row, mapping.RecipientName),
			RecipientEmail:    pick(row, mapping.RecipientEmail),
			RecipientRole:     pick(row, mapping.RecipientRole),
			EventName:         pick(row, mapping.EventName),
			IssueDate:         pick(row, mapping.IssueDate),
		})
	}
	return records, nil
}
