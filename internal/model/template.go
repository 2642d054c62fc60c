package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldKey menentukan bagaimana nilai field di-resolve saat render,
// bukan tipe datanya.
type FieldKey string

const (
	FieldRecipientName     FieldKey = "recipientName"
	FieldRecipientRole     FieldKey = "recipientRole"
	FieldEventName         FieldKey = "eventName"
	FieldIssueDate         FieldKey = "issueDate"
	FieldCertificateNumber FieldKey = "certificateNumber"
	FieldCustomText        FieldKey = "customText"
	FieldQRVerification    FieldKey = "qr_verification"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Field adalah satu slot data pada template. X dan Y dalam persen (0-100)
// terhadap lebar/tinggi canvas. FontSize juga dipakai sebagai satuan dasar
// ukuran QR code.
type Field struct {
	ID         string   `json:"id"`
	Key        FieldKey `json:"key"`
	Label      string   `json:"label"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	FontSize   float64  `json:"font_size"`
	FontFamily string   `json:"font_family"`
	Color      string   `json:"color"`
	Align      Align    `json:"align"`
	FontWeight string   `json:"font_weight"` // normal | bold
}

// FieldList disimpan sebagai JSONB di kolom fields.
type FieldList []Field

func (f FieldList) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *FieldList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		*f = nil
		return nil
	}
	return fmt.Errorf("tipe %T tidak bisa di-scan ke FieldList", src)
}

// Template mendeskripsikan layout visual sertifikat. Width/Height diambil
// dari dimensi asli gambar background saat upload dan hanya berubah lewat
// upload ulang.
type Template struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	Name          string    `db:"name"           json:"name"`
	BackgroundURL string    `db:"background_url" json:"background_url"`
	ThumbnailURL  *string   `db:"thumbnail_url"  json:"thumbnail_url"`
	Width         int       `db:"width"          json:"width"`
	Height        int       `db:"height"         json:"height"`
	Fields        FieldList `db:"fields"         json:"fields"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

type SaveTemplateRequest struct {
	Name   string    `json:"name"`
	Fields FieldList `json:"fields"`
}

// DefaultFields adalah susunan awal field untuk template baru.
func DefaultFields() FieldList {
	return FieldList{
		{ID: "1", Key: FieldRecipientName, Label: "Nama Penerima", X: 50, Y: 40, FontSize: 48, FontFamily: "Playfair Display", Color: "#1e293b", Align: AlignCenter, FontWeight: "bold"},
		{ID: "2", Key: FieldRecipientRole, Label: "Peran (Role)", X: 50, Y: 48, FontSize: 24, FontFamily: "Inter", Color: "#334155", Align: AlignCenter, FontWeight: "normal"},
		{ID: "3", Key: FieldEventName, Label: "Nama Acara", X: 50, Y: 56, FontSize: 24, FontFamily: "Inter", Color: "#475569", Align: AlignCenter, FontWeight: "normal"},
		{ID: "4", Key: FieldIssueDate, Label: "Tanggal", X: 20, Y: 80, FontSize: 16, FontFamily: "Inter", Color: "#64748b", Align: AlignLeft, FontWeight: "normal"},
		{ID: "5", Key: FieldCertificateNumber, Label: "No. Sertifikat", X: 80, Y: 80, FontSize: 14, FontFamily: "Inter", Color: "#94a3b8", Align: AlignRight, FontWeight: "normal"},
		{ID: "6", Key: FieldQRVerification, Label: "QR Code", X: 50, Y: 75, FontSize: 20, FontFamily: "Inter", Color: "#000000", Align: AlignCenter, FontWeight: "normal"},
	}
}
