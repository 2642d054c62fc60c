// Package ingest mengubah input manual atau CSV menjadi daftar penerima
// {nama, peran, email}.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/ahmadqo/certitrust/internal/model"
)

var ErrEmptyCSV = errors.New("file CSV kosong atau format salah")

// defaultRole memberi peran default sesuai bahasa saat kolom peran kosong.
func defaultRole(lang model.Language) string {
	if lang == model.LanguageID {
		return "Peserta"
	}
	return "Participant"
}

// ParseManualText mem-parse input manual satu penerima per baris dengan
// format "Nama, Peran, Email (opsional)". Baris kosong dilewati. Jika user
// menulis "Nama, Email, Peran", email yang nyasar di kolom peran dideteksi
// dari karakter '@' dan ditukar kembali.
func ParseManualText(text string, lang model.Language) []model.Recipient {
	var recipients []model.Recipient
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		rec := model.Recipient{Name: parts[0], Role: defaultRole(lang)}
		if len(parts) > 1 && parts[1] != "" {
			rec.Role = parts[1]
		}
		if len(parts) > 2 {
			rec.Email = parts[2]
		}

		if strings.Contains(rec.Role, "@") && !strings.Contains(rec.Email, "@") {
			email := rec.Role
			rec.Role = defaultRole(lang)
			if len(parts) > 2 && parts[2] != "" {
				rec.Role = parts[2]
			}
			rec.Email = email
		}

		recipients = append(recipients, rec)
	}
	return recipients
}

// ParseRecipientsCSV membaca CSV penerima. Kolom nama/email/peran dideteksi
// dari header (name/nama, mail/surel, role/peran/jabatan); tanpa header,
// kolom pertama dianggap nama dan kedua peran.
func ParseRecipientsCSV(r io.Reader, lang model.Language) ([]model.Recipient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}

	nameIdx, emailIdx, roleIdx := 0, -1, 1
	start := 0
	header := rows[0]
	if hasNameHeader(header) {
		start = 1
		for i, h := range header {
			lower := strings.ToLower(strings.TrimSpace(h))
			switch {
			case strings.Contains(lower, "nam"):
				nameIdx = i
			case strings.Contains(lower, "mail") || strings.Contains(lower, "surel"):
				emailIdx = i
			case strings.Contains(lower, "role") || strings.Contains(lower, "peran") || strings.Contains(lower, "jabatan"):
				roleIdx = i
			}
		}
	}

	var recipients []model.Recipient
	for _, row := range rows[start:] {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		rec := model.Recipient{
			Name:  name,
			Role:  cell(row, roleIdx),
			Email: cell(row, emailIdx),
		}
		if rec.Role == "" {
			rec.Role = defaultRole(lang)
		}
		recipients = append(recipients, rec)
	}
	return recipients, nil
}

func hasNameHeader(row []string) bool {
	joined := strings.ToLower(strings.Join(row, ","))
	return strings.Contains(joined, "name") || strings.Contains(joined, "nama")
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(row[idx], `"`, ""))
}
