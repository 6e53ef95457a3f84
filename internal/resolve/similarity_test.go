package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djrooz/btl-agency-scraper/internal/registry"
)

func TestNormalizeForMatch(t *testing.T) {
	t.Parallel()
	vocab := registry.DefaultVocabulary()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercased", "КРЕОН", "креон"},
		{"quotes dropped", `ооо "креон"`, "креон"},
		{"guillemets dropped", "«креон»", "креон"},
		{"legal token removed anywhere", "агентство ооо креон", "агентство креон"},
		{"multi word form removed", "общество с ограниченной ответственностью креон", "креон"},
		{"punctuation to spaces", "промо-старт!", "промо старт"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeForMatch(tt.in, vocab))
		})
	}
}

func TestSequenceRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1},
		{"identical", "креон", "креон", 1},
		{"disjoint", "abc", "xyz", 0},
		{"partial", "abcd", "bcde", 0.75}, // "bcd" matches: 2*3/8
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, SequenceRatio(tt.a, tt.b), 0.001)
		})
	}

	// Symmetric.
	assert.InDelta(t, SequenceRatio("промо старт", "промо групп"), SequenceRatio("промо групп", "промо старт"), 0.001)
}

func TestSimilar(t *testing.T) {
	t.Parallel()
	th := DefaultThresholds()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"empty never matches", "", "креон", false},
		{"exact", "креон", "креон", true},
		{"near identical", "промоушен групп", "промоушн групп", true},
		{"containment of long names", "агентство креон москва", "креон москва", true},
		{"containment blocked for short names", "лбл", "лбл групп х", false},
		{"token overlap", "альфа промо групп", "альфа промо групп москва", true},
		{"unrelated", "креон", "оазис", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, th.similar(tt.a, tt.b))
		})
	}
}

func TestTokenJaccard(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, tokenJaccard("промо групп", "групп промо"), 0.001)
	assert.InDelta(t, 0.5, tokenJaccard("а б в", "а б г"), 0.001)
	assert.Zero(t, tokenJaccard("абв", "где"))
}
