// Package render adalah mesin komposisi sertifikat: template + data + scale
// menjadi raster deterministik.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"

	"github.com/gogpu/gg"

	"github.com/ahmadqo/certitrust/internal/model"
)

var (
	ErrImageDecode  = errors.New("gambar background tidak bisa didecode")
	ErrInvalidScale = errors.New("scale harus lebih besar dari nol")
)

// Renderer merender sertifikat di atas surface gg. Stateless antar
// pemanggilan: tiap render memiliki surface-nya sendiri, tidak ada cache
// gambar maupun QR antar render.
type Renderer struct {
	fonts  *FontRegistry
	origin string
}

// NewRenderer membuat renderer dengan registry font dan origin untuk URL
// verifikasi pada QR.
func NewRenderer(fonts *FontRegistry, origin string) *Renderer {
	return &Renderer{fonts: fonts, origin: origin}
}

// Surface adalah hasil render: buffer piksel plus encoder ke format standar.
type Surface struct {
	img    image.Image
	width  int
	height int
}

func (s *Surface) Image() image.Image { return s.img }
func (s *Surface) Width() int         { return s.width }
func (s *Surface) Height() int        { return s.height }

func (s *Surface) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.img); err != nil {
		return nil, fmt.Errorf("gagal encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG meng-encode surface dengan kualitas 1-100. Dipakai untuk file
// unduhan supaya ukurannya terkendali.
func (s *Surface) EncodeJPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, s.img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("gagal encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// Render menjalankan pipeline komposisi: alokasi surface sebesar
// (width*scale, height*scale), background direntang persis memenuhi
// surface, lalu tiap field digambar berurutan sesuai urutan template.
//
// Untuk (template, data, scale) yang sama hasilnya identik piksel demi
// piksel. Gagal decode background membatalkan seluruh render; kegagalan
// satu field (QR) hanya melewatkan field itu. Pembatalan ctx dicek di
// antara langkah-langkah.
func (r *Renderer) Render(ctx context.Context, tpl *model.Template, background []byte, data Data, scale float64) (*Surface, error) {
	if scale <= 0 {
		return nil, ErrInvalidScale
	}

	bg, _, err := image.Decode(bytes.NewReader(background))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	width := int(float64(tpl.Width)*scale + 0.5)
	height := int(float64(tpl.Height)*scale + 0.5)

	dc := gg.NewContext(width, height)

	// Background harus selesai sebelum field digambar di atasnya.
	// Tidak ada koreksi aspek: width/height template diambil dari dimensi
	// gambar saat upload, jadi rasionya sama.
	dc.DrawImageEx(gg.ImageBufFromImage(bg), gg.DrawImageOptions{
		DstWidth:  float64(width),
		DstHeight: float64(height),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, field := range tpl.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.drawField(dc, field, data, scale, width, height)
	}

	return &Surface{img: dc.Image(), width: width, height: height}, nil
}

func (r *Renderer) drawField(dc *gg.Context, field model.Field, data Data, scale float64, width, height int) {
	text, imgReq := resolveField(field, data, r.origin)

	x := field.X / 100 * float64(width)
	y := field.Y / 100 * float64(height)

	if imgReq != nil {
		edge := qrEdge(field.FontSize, scale)
		qr, err := qrImage(imgReq.URL, edge)
		if err != nil {
			// sertifikat tetap harus bisa dilihat walau QR gagal
			log.Printf("QR untuk field %s dilewati: %v", field.ID, err)
			return
		}
		dc.DrawImageEx(gg.ImageBufFromImage(qr), gg.DrawImageOptions{
			X:         qrDrawX(x, edge, field.Align),
			Y:         y,
			DstWidth:  float64(edge),
			DstHeight: float64(edge),
		})
		return
	}

	scaledSize := field.FontSize * scale
	face := r.fonts.Face(field.FontFamily, field.FontWeight, scaledSize)
	dc.SetFont(face)
	dc.SetHexColor(field.Color)
	ax := anchorX(field.Align)

	if field.Key == model.FieldEventName {
		maxWidth := wrapMaxWidth(float64(width), field.Align)
		lineHeight := scaledSize * 1.2
		for i, line := range wrapText(text, face, maxWidth) {
			dc.DrawStringAnchored(line, x, y+float64(i)*lineHeight, ax, 1)
		}
		return
	}

	dc.DrawStringAnchored(text, x, y, ax, 1)
}

func anchorX(align model.Align) float64 {
	switch align {
	case model.AlignCenter:
		return 0.5
	case model.AlignRight:
		return 1
	default:
		return 0
	}
}
