package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadqo/certitrust/internal/model"
)

func TestQREdge(t *testing.T) {
	assert.Equal(t, 80, qrEdge(20, 1))
	assert.Equal(t, 160, qrEdge(20, 2))
	assert.Equal(t, 40, qrEdge(20, 0.5))
}

func TestQRDrawX(t *testing.T) {
	// field rata kanan di x=80% pada surface 1000px, fontSize 20, scale 1:
	// sisi = 80, titik gambar = 800 - 80 = 720
	anchor := 0.8 * 1000.0
	edge := qrEdge(20, 1)
	assert.InDelta(t, 720, qrDrawX(anchor, edge, model.AlignRight), 0.001)
	assert.InDelta(t, 760, qrDrawX(anchor, edge, model.AlignCenter), 0.001)
	assert.InDelta(t, 800, qrDrawX(anchor, edge, model.AlignLeft), 0.001)
}

func TestQRImageDeterministic(t *testing.T) {
	url := "https://certitrust.demo/#/verify/SRT-PST/2024/0001-123"

	a, err := qrImage(url, 120)
	require.NoError(t, err)
	b, err := qrImage(url, 120)
	require.NoError(t, err)

	require.Equal(t, a.Bounds(), b.Bounds())
	assert.Equal(t, 120, a.Bounds().Dx())

	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			require.Equal(t, a.At(x, y), b.At(x, y), "piksel (%d,%d)", x, y)
		}
	}
}
