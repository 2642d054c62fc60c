package numbering

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		role string
		want Category
	}{
		{"Peserta", CategoryParticipant},
		{"Participant", CategoryParticipant},
		{"", CategoryParticipant},
		{"Mahasiswa Semester 3", CategoryParticipant},
		{"Narasumber", CategorySpeaker},
		{"Keynote Speaker", CategorySpeaker},
		{"Pemateri Utama", CategorySpeaker},
		{"NARASUMBER", CategorySpeaker},
		{"Panitia", CategoryInstructor},
		{"Instructor", CategoryInstructor},
		{"Instruktur Lab", CategoryInstructor},
		{"Tutor Pendamping", CategoryInstructor},
		// ambigu: token speaker dicek lebih dulu
		{"Pemateri sekaligus Panitia", CategorySpeaker},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.role), "role %q", tt.role)
	}
}

func TestGenerateNumber(t *testing.T) {
	got := GenerateNumber("SRT-PST/{YEAR}/", "2024", 1)
	assert.Regexp(t, regexp.MustCompile(`^SRT-PST/2024/0001-\d{3}$`), got)
}

func TestGenerateNumberWithoutYearPlaceholder(t *testing.T) {
	got := GenerateNumber("CERT-", "2024", 12)
	assert.Regexp(t, `^CERT-0012-\d{3}$`, got)
}

func TestGeneratorBatch(t *testing.T) {
	prefixes := PrefixSet{
		Participant: "SRT-PST/{YEAR}/",
		Speaker:     "SRT-NRS/{YEAR}/",
		Instructor:  "SRT-INS/{YEAR}/",
	}
	gen := NewGenerator(prefixes, "2024")

	roles := []string{"Peserta", "Narasumber", "Panitia"}
	wantCats := []Category{CategoryParticipant, CategorySpeaker, CategoryInstructor}
	wantRe := []string{
		`^SRT-PST/2024/0001-\d{3}$`,
		`^SRT-NRS/2024/0002-\d{3}$`,
		`^SRT-INS/2024/0003-\d{3}$`,
	}

	seen := map[string]bool{}
	for i, role := range roles {
		cat, num := gen.Next(role)
		require.Equal(t, wantCats[i], cat)
		assert.Regexp(t, wantRe[i], num)
		assert.False(t, seen[num], "nomor duplikat dalam batch: %s", num)
		seen[num] = true
	}
}

func TestPrefixFor(t *testing.T) {
	p := PrefixSet{Participant: "a", Speaker: "b", Instructor: "c"}
	assert.Equal(t, "a", p.PrefixFor(CategoryParticipant))
	assert.Equal(t, "b", p.PrefixFor(CategorySpeaker))
	assert.Equal(t, "c", p.PrefixFor(CategoryInstructor))
	assert.Equal(t, "a", p.PrefixFor(Category("unknown")))
}
