package render

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ahmadqo/certitrust/internal/model"
)

// qrEdge adalah panjang sisi QR dalam piksel: fontSize field dikali rasio
// tetap 4, dikali scale. Rasio 4 menjaga QR tetap terbaca pada fontSize
// terkecil tanpa jadi raksasa pada yang terbesar.
func qrEdge(fontSize, scale float64) int {
	return int(fontSize*4*scale + 0.5)
}

// qrDrawX menggeser titik gambar QR sesuai alignment field: center mundur
// setengah sisi, right mundur satu sisi penuh. Y tidak pernah digeser.
func qrDrawX(anchorX float64, edge int, align model.Align) float64 {
	switch align {
	case model.AlignCenter:
		return anchorX - float64(edge)/2
	case model.AlignRight:
		return anchorX - float64(edge)
	default:
		return anchorX
	}
}

// qrImage menghasilkan QR level koreksi Medium dengan quiet zone minimal,
// deterministik terhadap URL-nya.
func qrImage(url string, edge int) (image.Image, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("gagal generate QR code: %w", err)
	}
	q.DisableBorder = true
	return q.Image(edge), nil
}
