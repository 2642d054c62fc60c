package model

import "time"

// SystemConfig adalah konfigurasi sistem (satu baris), dibuat sekali dengan
// default lalu hanya berubah lewat simpan eksplisit oleh admin. Dibaca pada
// setiap penerbitan. Tiap prefix boleh mengandung placeholder {YEAR}.
type SystemConfig struct {
	ID                int       `db:"id"                 json:"-"`
	OrganizationName  string    `db:"organization_name"  json:"organization_name"`
	DefaultLanguage   Language  `db:"default_language"   json:"default_language"`
	PrefixParticipant string    `db:"prefix_participant" json:"prefix_participant"`
	PrefixSpeaker     string    `db:"prefix_speaker"     json:"prefix_speaker"`
	PrefixInstructor  string    `db:"prefix_instructor"  json:"prefix_instructor"`
	UpdatedAt         time.Time `db:"updated_at"         json:"updated_at"`
}

// DefaultSystemConfig mengembalikan nilai awal konfigurasi.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		ID:                1,
		OrganizationName:  "Politeknik ATI Padang",
		DefaultLanguage:   LanguageID,
		PrefixParticipant: "SRT-PST/{YEAR}/",
		PrefixSpeaker:     "SRT-NRS/{YEAR}/",
		PrefixInstructor:  "SRT-INS/{YEAR}/",
	}
}

type SaveConfigRequest struct {
	OrganizationName  string   `json:"organization_name"`
	DefaultLanguage   Language `json:"default_language"`
	PrefixParticipant string   `json:"prefix_participant"`
	PrefixSpeaker     string   `json:"prefix_speaker"`
	PrefixInstructor  string   `json:"prefix_instructor"`
}
