package model

import (
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageEN Language = "EN"
	LanguageID Language = "ID"
)

type CertificateStatus string

const (
	StatusDraft     CertificateStatus = "draft"
	StatusPublished CertificateStatus = "published"
)

// Certificate adalah satu sertifikat terbit, terikat ke tepat satu template.
// CertificateNumber unik secara global di dalam store.
type Certificate struct {
	ID                uuid.UUID         `db:"id"                 json:"id"`
	TemplateID        uuid.UUID         `db:"template_id"        json:"template_id"`
	CertificateNumber string            `db:"certificate_number" json:"certificate_number"`
	RecipientName     string            `db:"recipient_name"     json:"recipient_name"`
	RecipientEmail    *string           `db:"recipient_email"    json:"recipient_email"`
	RecipientRole     *string           `db:"recipient_role"     json:"recipient_role"`
	EventName         string            `db:"event_name"         json:"event_name"`
	IssueDate         time.Time         `db:"issue_date"         json:"issue_date"`
	Language          Language          `db:"language"           json:"language"`
	CustomText        *string           `db:"custom_text"        json:"custom_text"`
	Status            CertificateStatus `db:"status"             json:"status"`
	PDFURL            *string           `db:"pdf_url"            json:"pdf_url"`
	CreatedAt         time.Time         `db:"created_at"         json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at"         json:"updated_at"`

	// Join fields
	TemplateName *string `db:"template_name" json:"template_name,omitempty"`
}

// Recipient adalah satu baris hasil parsing input manual atau CSV.
type Recipient struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

type IssueRequest struct {
	TemplateID string      `json:"template_id"`
	EventName  string      `json:"event_name"`
	IssueDate  string      `json:"issue_date"` // format: YYYY-MM-DD
	Language   Language    `json:"language"`
	CustomText string      `json:"custom_text"`
	Recipients []Recipient `json:"recipients"`
	ManualText string      `json:"manual_text"` // alternatif: "Nama, Peran, Email" per baris
}

// ImportRecord adalah satu baris migrasi data lama yang sudah dipetakan
// ke field sistem. Nomor sertifikat lama dipertahankan.
type ImportRecord struct {
	CertificateNumber string `json:"certificate_number"`
	RecipientName     string `json:"recipient_name"`
	RecipientEmail    string `json:"recipient_email"`
	RecipientRole     string `json:"recipient_role"`
	EventName         string `json:"event_name"`
	IssueDate         string `json:"issue_date"`
}

type ImportRequest struct {
	TemplateID string         `json:"template_id"`
	Records    []ImportRecord `json:"records"`
}

type UpdateCertificateRequest struct {
	RecipientName  string   `json:"recipient_name"`
	RecipientEmail string   `json:"recipient_email"`
	RecipientRole  string   `json:"recipient_role"`
	EventName      string   `json:"event_name"`
	IssueDate      string   `json:"issue_date"`
	Language       Language `json:"language"`
	CustomText     string   `json:"custom_text"`
}

type CertificateFilter struct {
	EventName string
	Search    string // nama penerima atau nomor sertifikat
	Status    string
	Page      int
	PerPage   int
}

// EventSummary adalah satu baris rekap acara untuk laporan distribusi.
type EventSummary struct {
	EventName string    `db:"event_name" json:"event_name"`
	Total     int       `db:"total"      json:"total"`
	IssueDate time.Time `db:"issue_date" json:"issue_date"`
}

// VerifyResponse untuk endpoint publik verifikasi nomor sertifikat.
type VerifyResponse struct {
	IsValid     bool         `json:"is_valid"`
	Certificate *Certificate `json:"certificate,omitempty"`
	Template    *Template    `json:"template,omitempty"`
	Message     string       `json:"message"`
}
