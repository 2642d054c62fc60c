package render

import (
	"strings"
	"testing"

	"github.com/gogpu/gg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ahmadqo/certitrust/internal/model"
)

func testFace(t *testing.T, size float64) text.Face {
	t.Helper()
	source, err := text.NewFontSource(goregular.TTF)
	require.NoError(t, err)
	return source.Face(size)
}

func TestWrapTextShortStaysSingleLine(t *testing.T) {
	face := testFace(t, 24)
	lines := wrapText("Workshop AI", face, 10000)
	assert.Equal(t, []string{"Workshop AI"}, lines)
}

func TestWrapTextLongProducesMultipleLines(t *testing.T) {
	face := testFace(t, 24)
	s := "Pelatihan Teknis Pengelolaan Limbah Industri Untuk Tenaga Kerja Sektor Manufaktur"
	maxWidth := 300.0

	full, _ := text.Measure(s, face)
	require.Greater(t, full, maxWidth, "kalimat uji harus lebih lebar dari maxWidth")

	lines := wrapText(s, face, maxWidth)
	require.GreaterOrEqual(t, len(lines), 2)

	for _, line := range lines {
		if strings.Contains(line, " ") {
			w, _ := text.Measure(line, face)
			// baris multi-kata tidak boleh melebihi maxWidth; kata tunggal
			// yang memang lebih lebar dibiarkan tanpa dipenggal
			assert.LessOrEqual(t, w, maxWidth, "baris %q", line)
		}
	}

	// tidak ada kata yang hilang atau terpenggal
	assert.Equal(t, strings.Fields(s), strings.Fields(strings.Join(lines, " ")))
}

func TestWrapTextOversizedSingleWordNotSplit(t *testing.T) {
	face := testFace(t, 24)
	lines := wrapText("Supercalifragilisticexpialidocious", face, 10)
	assert.Equal(t, []string{"Supercalifragilisticexpialidocious"}, lines)
}

func TestWrapMaxWidth(t *testing.T) {
	assert.InDelta(t, 800, wrapMaxWidth(1000, model.AlignCenter), 0.001)
	assert.InDelta(t, 600, wrapMaxWidth(1000, model.AlignLeft), 0.001)
	assert.InDelta(t, 600, wrapMaxWidth(1000, model.AlignRight), 0.001)
}
