package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	multiSpaceRe = regexp.MustCompile(`\s+`)

	// nameJunkRe matches runs of characters that carry no signal in a
	// company name. Letters and digits of any script survive.
	nameJunkRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-\&\.\(\)"']+`)

	wrappingQuoteRe = regexp.MustCompile(`^["']|["']$`)

	taxIDDigitsRe  = regexp.MustCompile(`[^\d]`)
	industryCodeRe = regexp.MustCompile(`\d{2}\.\d{1,2}(\.\d{1,2})?`)
	firstIntRe     = regexp.MustCompile(`\d+`)
	numericTokenRe = regexp.MustCompile(`\d+[,.]?\d*`)

	// urlRe is a conservative scheme://host[:port][/path] grammar. A URL
	// that fails it is discarded outright, never repaired.
	urlRe = regexp.MustCompile(`(?i)^https?://` +
		`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?` +
		`|localhost` +
		`|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+7[\s\-]?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`),
		regexp.MustCompile(`8[\s\-]?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`),
		regexp.MustCompile(`\(\d{3}\)[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`),
	}

	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// revenueUnits maps magnitude words to multipliers. Words are searched
// in the lowercased text, anywhere.
var revenueUnits = []struct {
	word       string
	multiplier float64
}{
	{"млрд", 1e9},
	{"billion", 1e9},
	{"млн", 1e6},
	{"million", 1e6},
	{"тыс", 1e3},
	{"thousand", 1e3},
}

// CleanText strips HTML tags, collapses whitespace and trims.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = htmlTagRe.ReplaceAllString(text, "")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ParseRevenue extracts a revenue figure from free text: the first
// numeric token scaled by any magnitude word found in the text.
// Returns 0 when nothing parses.
func ParseRevenue(text string) float64 {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	token := numericTokenRe.FindString(lower)
	if token == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0
	}

	for _, unit := range revenueUnits {
		if strings.Contains(lower, unit.word) {
			value *= unit.multiplier
			break
		}
	}
	return value
}

// ExtractPhone finds the first Russian-format phone number in text.
func ExtractPhone(text string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// ExtractEmail finds the first email address in text.
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ValidURL reports whether s matches the strict URL grammar.
func ValidURL(s string) bool {
	return urlRe.MatchString(s)
}
