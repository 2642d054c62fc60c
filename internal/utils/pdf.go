package utils

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ImageToPDF membungkus satu gambar JPEG menjadi PDF satu halaman yang
// ukurannya persis sama dengan gambar (1 px = 1 pt). Orientasi landscape
// dipakai kalau gambar lebih lebar daripada tinggi.
func ImageToPDF(jpegData []byte, width, height float64) ([]byte, error) {
	orientation := "P"
	size := gofpdf.SizeType{Wd: width, Ht: height}
	if width > height {
		orientation = "L"
		// NewCustom menukar Wd/Ht untuk orientasi landscape
		size = gofpdf.SizeType{Wd: height, Ht: width}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	reader := bytes.NewReader(jpegData)
	pdf.RegisterImageOptionsReader("certificate", gofpdf.ImageOptions{ImageType: "JPEG"}, reader)
	pdf.ImageOptions("certificate", 0, 0, width, height, false, gofpdf.ImageOptions{ImageType: "JPEG"}, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("gagal generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}
