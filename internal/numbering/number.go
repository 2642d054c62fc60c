package numbering

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/ahmadqo/certitrust/internal/model"
)

// GenerateNumber menyusun nomor sertifikat: placeholder {YEAR} pada prefix
// diganti tahun 4 digit, lalu nomor urut 4 digit (1-based dalam batch),
// lalu sufiks acak 3 digit. Contoh: SRT-PST/2024/0001-482.
//
// Sufiks diambil dari crypto/rand untuk menekan peluang tabrakan; jaminan
// keras unik tetap ada di constraint UNIQUE pada store.
func GenerateNumber(prefixTemplate, year string, sequenceIndex int) string {
	prefix := strings.ReplaceAll(prefixTemplate, "{YEAR}", year)
	return fmt.Sprintf("%s%04d-%s", prefix, sequenceIndex, randomSuffix())
}

func randomSuffix() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		// crypto/rand praktis tidak pernah gagal; nol-kan saja daripada panik
		return "000"
	}
	return fmt.Sprintf("%03d", n.Int64())
}

// PrefixSet adalah template prefix per kategori, diambil dari SystemConfig.
type PrefixSet struct {
	Participant string
	Speaker     string
	Instructor  string
}

func PrefixSetFromConfig(cfg *model.SystemConfig) PrefixSet {
	return PrefixSet{
		Participant: cfg.PrefixParticipant,
		Speaker:     cfg.PrefixSpeaker,
		Instructor:  cfg.PrefixInstructor,
	}
}

// PrefixFor memilih template prefix sesuai kategori.
func (p PrefixSet) PrefixFor(cat Category) string {
	switch cat {
	case CategorySpeaker:
		return p.Speaker
	case CategoryInstructor:
		return p.Instructor
	default:
		return p.Participant
	}
}

// Generator menomori satu batch penerbitan. Nomor urut 1-based mengikuti
// posisi penerima dalam batch, bukan per kategori.
type Generator struct {
	prefixes PrefixSet
	year     string
	next     int
}

func NewGenerator(prefixes PrefixSet, year string) *Generator {
	return &Generator{prefixes: prefixes, year: year, next: 1}
}

// Next mengklasifikasikan peran lalu menghasilkan nomor berikutnya.
func (g *Generator) Next(roleText string) (Category, string) {
	cat := Classify(roleText)
	num := GenerateNumber(g.prefixes.PrefixFor(cat), g.year, g.next)
	g.next++
	return cat, num
}
