package resolve

import (
	"regexp"
	"strings"

	"github.com/djrooz/btl-agency-scraper/internal/registry"
)

var (
	quoteBracketRe = regexp.MustCompile(`["'()\[\]«»]`)
	punctRe        = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// Thresholds holds the empirical fuzzy-match constants. They were tuned
// against the collected corpus; change them through configuration, not
// by editing the defaults.
type Thresholds struct {
	// SequenceRatio is the minimum character-level similarity ratio.
	SequenceRatio float64 `yaml:"sequence_ratio" mapstructure:"sequence_ratio"`
	// TokenJaccard is the minimum word-set Jaccard similarity.
	TokenJaccard float64 `yaml:"token_jaccard" mapstructure:"token_jaccard"`
	// ContainmentMinLen is the minimum length of both names before
	// substring containment counts as a match.
	ContainmentMinLen int `yaml:"containment_min_len" mapstructure:"containment_min_len"`
}

// DefaultThresholds returns the production fuzzy-match constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SequenceRatio:     0.8,
		TokenJaccard:      0.6,
		ContainmentMinLen: 5,
	}
}

// NormalizeForMatch prepares a company name for fuzzy comparison:
// lowercase, quotes and brackets dropped, remaining punctuation
// collapsed to spaces, legal-form tokens removed as whole words
// anywhere in the string (not just as a prefix).
func NormalizeForMatch(name string, vocab *registry.Vocabulary) string {
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	name = quoteBracketRe.ReplaceAllString(name, "")
	name = punctRe.ReplaceAllString(name, " ")

	// Multi-word legal forms cannot be matched token-wise.
	single := make(map[string]struct{})
	for _, form := range vocab.LegalFormTokens {
		if strings.Contains(form, " ") {
			name = strings.ReplaceAll(name, form, " ")
		} else {
			single[form] = struct{}{}
		}
	}

	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		if _, drop := single[w]; !drop {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// similar reports whether two normalized names describe the same entity.
// Any one of four tests passing is enough: exact equality, sequence
// ratio, mutual containment of long names, token-set Jaccard.
func (t Thresholds) similar(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if SequenceRatio(a, b) >= t.SequenceRatio {
		return true
	}
	if len([]rune(a)) > t.ContainmentMinLen && len([]rune(b)) > t.ContainmentMinLen {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return true
		}
	}
	return tokenJaccard(a, b) >= t.TokenJaccard
}

// tokenJaccard computes intersection/union over whitespace-split word
// sets.
func tokenJaccard(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// SequenceRatio is the standard longest-matching-blocks similarity over
// the full strings: twice the total matched characters divided by the
// combined length.
func SequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	b2j := make(map[rune][]int, len(rb))
	for j, r := range rb {
		b2j[r] = append(b2j[r], j)
	}

	matched := matchingSize(ra, rb, 0, len(ra), 0, len(rb), b2j)
	return 2 * float64(matched) / float64(total)
}

// matchingSize sums matching-block sizes by recursively splitting around
// the longest common block, the same divide-and-conquer the classic
// sequence matcher uses.
func matchingSize(a, b []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi, b2j)
	if size == 0 {
		return 0
	}
	sum := size
	sum += matchingSize(a, b, alo, i, blo, j, b2j)
	sum += matchingSize(a, b, i+size, ahi, j+size, bhi, b2j)
	return sum
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] within
// the given bounds, preferring the earliest block on ties.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
