package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadqo/certitrust/internal/model"
)

func testBackground(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 244, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testTemplate(w, h int) *model.Template {
	return &model.Template{
		Name:   "Sertifikat Webinar",
		Width:  w,
		Height: h,
		Fields: model.DefaultFields(),
	}
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	fonts, err := NewFontRegistry()
	require.NoError(t, err)
	return NewRenderer(fonts, "https://sertifikat.example.com")
}

func testData() Data {
	return Data{
		CertificateNumber: "SRT-PST/2024/0001-123",
		RecipientName:     "Budi Santoso",
		RecipientRole:     "Peserta",
		EventName:         "Workshop Pengembangan Aplikasi Cerdas Berbasis Kecerdasan Buatan",
		IssueDate:         time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC),
		Language:          model.LanguageID,
	}
}

func TestRenderSurfaceSize(t *testing.T) {
	r := testRenderer(t)
	bg := testBackground(t, 800, 600)

	surface, err := r.Render(context.Background(), testTemplate(800, 600), bg, testData(), 1)
	require.NoError(t, err)
	assert.Equal(t, 800, surface.Width())
	assert.Equal(t, 600, surface.Height())

	// surface selalu berukuran (width*scale, height*scale)
	surface, err = r.Render(context.Background(), testTemplate(800, 600), bg, testData(), 0.5)
	require.NoError(t, err)
	assert.Equal(t, 400, surface.Width())
	assert.Equal(t, 300, surface.Height())

	surface, err = r.Render(context.Background(), testTemplate(800, 600), bg, testData(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1600, surface.Width())
	assert.Equal(t, 1200, surface.Height())
}

func TestRenderDeterministic(t *testing.T) {
	r := testRenderer(t)
	bg := testBackground(t, 640, 480)
	tpl := testTemplate(640, 480)
	data := testData()

	first, err := r.Render(context.Background(), tpl, bg, data, 1)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), tpl, bg, data, 1)
	require.NoError(t, err)

	a, err := first.EncodePNG()
	require.NoError(t, err)
	b, err := second.EncodePNG()
	require.NoError(t, err)
	assert.Equal(t, a, b, "render identik harus menghasilkan byte identik")
}

func TestRenderInvalidBackground(t *testing.T) {
	r := testRenderer(t)
	_, err := r.Render(context.Background(), testTemplate(800, 600), []byte("bukan gambar"), testData(), 1)
	require.ErrorIs(t, err, ErrImageDecode)
}

func TestRenderInvalidScale(t *testing.T) {
	r := testRenderer(t)
	_, err := r.Render(context.Background(), testTemplate(800, 600), testBackground(t, 800, 600), testData(), 0)
	require.ErrorIs(t, err, ErrInvalidScale)
}

func TestRenderCancelled(t *testing.T) {
	r := testRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, testTemplate(800, 600), testBackground(t, 800, 600), testData(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderEncodeJPEG(t *testing.T) {
	r := testRenderer(t)
	surface, err := r.Render(context.Background(), testTemplate(400, 300), testBackground(t, 400, 300), testData(), 1)
	require.NoError(t, err)

	data, err := surface.EncodeJPEG(85)
	require.NoError(t, err)
	// JPEG SOI marker
	require.GreaterOrEqual(t, len(data), 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
}
