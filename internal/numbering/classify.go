// Package numbering menurunkan kategori peran dan nomor sertifikat dari
// input teks bebas.
package numbering

import "strings"

type Category string

const (
	CategoryParticipant Category = "participant"
	CategorySpeaker     Category = "speaker"
	CategoryInstructor  Category = "instructor"
)

// rule memetakan sekumpulan token ke satu kategori. Urutan rules menentukan
// prioritas: aturan pertama yang cocok menang.
type rule struct {
	tokens   []string
	category Category
}

// Klasifikasi berbasis substring, case-insensitive. Ini heuristik, bukan
// taksonomi pasti: "nara"/"speak"/"pemateri" dicek sebelum
// "instru"/"panitia"/"tutor"; sisanya jatuh ke participant.
var rules = []rule{
	{tokens: []string{"nara", "speak", "pemateri"}, category: CategorySpeaker},
	{tokens: []string{"instru", "panitia", "tutor"}, category: CategoryInstructor},
}

// Classify menentukan kategori dari teks peran bebas.
func Classify(roleText string) Category {
	lower := strings.ToLower(roleText)
	for _, r := range rules {
		for _, token := range r.tokens {
			if strings.Contains(lower, token) {
				return r.category
			}
		}
	}
	return CategoryParticipant
}
