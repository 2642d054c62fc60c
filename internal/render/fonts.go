package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontRegistry memetakan (family, weight) ke font source. Family yang tidak
// dikenal jatuh ke Go Regular/Go Bold bawaan supaya render selalu jalan
// tanpa aset eksternal.
type FontRegistry struct {
	mu      sync.RWMutex
	sources map[string]*text.FontSource

	regular *text.FontSource
	bold    *text.FontSource
}

func NewFontRegistry() (*FontRegistry, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("gagal memuat font default: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("gagal memuat font bold default: %w", err)
	}
	return &FontRegistry{
		sources: make(map[string]*text.FontSource),
		regular: regular,
		bold:    bold,
	}, nil
}

// LoadDir memuat semua file .ttf/.otf dari sebuah direktori. Nama file
// menentukan family dan weight: "Inter.ttf" -> Inter normal,
// "Inter-Bold.ttf" -> Inter bold. Direktori yang tidak ada bukan error.
func (fr *FontRegistry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("gagal membaca font %s: %w", entry.Name(), err)
		}
		source, err := text.NewFontSource(data)
		if err != nil {
			return fmt.Errorf("gagal parse font %s: %w", entry.Name(), err)
		}

		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		family, weight := base, "normal"
		if idx := strings.LastIndex(base, "-"); idx > 0 {
			suffix := strings.ToLower(base[idx+1:])
			if suffix == "bold" {
				family, weight = base[:idx], "bold"
			}
		}

		fr.mu.Lock()
		fr.sources[fontKey(family, weight)] = source
		fr.mu.Unlock()
	}

	return nil
}

// Face mengembalikan face pada ukuran piksel yang diminta.
func (fr *FontRegistry) Face(family, weight string, size float64) text.Face {
	if weight != "bold" {
		weight = "normal"
	}

	fr.mu.RLock()
	source, ok := fr.sources[fontKey(family, weight)]
	if !ok && weight == "bold" {
		// family ada tapi tidak punya varian bold
		source, ok = fr.sources[fontKey(family, "normal")]
	}
	fr.mu.RUnlock()

	if !ok {
		if weight == "bold" {
			source = fr.bold
		} else {
			source = fr.regular
		}
	}
	return source.Face(size)
}

func fontKey(family, weight string) string {
	return strings.ToLower(strings.TrimSpace(family)) + "|" + weight
}
