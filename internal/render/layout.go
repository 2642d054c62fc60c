package render

import (
	"strings"

	"github.com/gogpu/gg/text"

	"github.com/ahmadqo/certitrust/internal/model"
)

// wrapText memecah teks jadi baris-baris dengan lebar terukur <= maxWidth,
// greedy per kata. Kata tunggal yang lebih lebar dari maxWidth tidak
// dipenggal. Baris terakhir selalu ikut, walau kosong setelah trim.
func wrapText(s string, face text.Face, maxWidth float64) []string {
	words := strings.Split(s, " ")
	line := ""
	var lines []string

	for n, word := range words {
		test := line + word + " "
		w, _ := text.Measure(test, face)
		if w > maxWidth && n > 0 {
			lines = append(lines, strings.TrimSpace(line))
			line = word + " "
		} else {
			line = test
		}
	}
	lines = append(lines, strings.TrimSpace(line))

	return lines
}

// wrapMaxWidth adalah lebar maksimum blok eventName: 80% lebar canvas untuk
// field rata tengah, 60% untuk kiri/kanan (mengimbangi margin yang tersisa
// dari anchor kiri/kanan).
func wrapMaxWidth(canvasWidth float64, align model.Align) float64 {
	if align == model.AlignCenter {
		return canvasWidth * 0.8
	}
	return canvasWidth * 0.6
}
