// Package normalize turns raw collector records into canonical typed
// company records. Every per-field rule is pure; a record that cannot
// yield a usable name is rejected, everything else is coerced with a
// safe fallback.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/registry"
)

// ErrUnsalvageable marks a record whose name is empty after cleanup.
// Name is the only mandatory field.
var ErrUnsalvageable = eris.New("normalize: record has no usable name")

// ErrBelowThreshold marks a record with a known revenue under the
// configured minimum. Revenue 0 means "no data" and is never rejected.
var ErrBelowThreshold = eris.New("normalize: revenue below minimum threshold")

// Normalizer applies per-field cleaning rules driven by an immutable
// vocabulary.
type Normalizer struct {
	vocab      *registry.Vocabulary
	minRevenue float64

	legalPrefixRes []*regexp.Regexp
	titleCaser     cases.Caser
}

// New builds a Normalizer. minRevenue > 0 enables the revenue validity
// gate; pass 0 to disable it.
func New(vocab *registry.Vocabulary, minRevenue float64) *Normalizer {
	prefixes := make([]*regexp.Regexp, 0, len(vocab.LegalFormPrefixes))
	for _, form := range vocab.LegalFormPrefixes {
		prefixes = append(prefixes, regexp.MustCompile(`(?i)^`+regexp.QuoteMeta(form)+`\s*["']?`))
	}
	return &Normalizer{
		vocab:          vocab,
		minRevenue:     minRevenue,
		legalPrefixRes: prefixes,
		titleCaser:     cases.Title(language.Russian),
	}
}

// Normalize cleans a raw record into a CompanyRecord. It returns
// ErrUnsalvageable when no usable name survives cleanup and
// ErrBelowThreshold when a known-positive revenue falls under the
// configured minimum.
func (n *Normalizer) Normalize(raw model.RawRecord) (*model.CompanyRecord, error) {
	rec := &model.CompanyRecord{
		Name:          n.cleanName(stringField(raw, "name")),
		TaxID:         CleanTaxID(raw["inn"]),
		Revenue:       cleanRevenue(raw["revenue"]),
		RevenueYear:   cleanRevenueYear(raw["revenue_year"]),
		SegmentTag:    cleanSegmentTag(stringField(raw, "segment_tag")),
		Source:        n.vocab.CanonicalSource(stringField(raw, "source")),
		IndustryCode:  industryCodeRe.FindString(stringField(raw, "okved_main")),
		EmployeeCount: cleanEmployees(raw["employees"]),
		Website:       cleanURL(stringField(raw, "site")),
		Description:   cleanDescription(stringField(raw, "description")),
		Region:        n.cleanRegion(stringField(raw, "region")),
		Contact:       cleanContact(stringField(raw, "contacts")),
		RatingRef:     cleanURL(stringField(raw, "rating_ref")),
	}

	if rec.Name == "" {
		return nil, ErrUnsalvageable
	}
	// Revenue 0 is "no data", not "zero income": only a known-positive
	// figure under the minimum disqualifies a record.
	if n.minRevenue > 0 && rec.Revenue > 0 && rec.Revenue < n.minRevenue {
		return nil, ErrBelowThreshold
	}
	return rec, nil
}

// cleanName strips tags and whitespace, removes a leading legal form,
// unwraps quotes and drops junk characters.
func (n *Normalizer) cleanName(name string) string {
	name = CleanText(name)
	if name == "" {
		return ""
	}
	for _, re := range n.legalPrefixRes {
		name = re.ReplaceAllString(name, "")
	}
	name = wrappingQuoteRe.ReplaceAllString(name, "")
	name = nameJunkRe.ReplaceAllString(name, " ")
	name = multiSpaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// CleanTaxID keeps only digits and accepts the result iff it is a valid
// tax-id length (10 or 12). Anything else is treated as absent.
func CleanTaxID(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = val
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
	digits := taxIDDigitsRe.ReplaceAllString(strings.TrimSpace(s), "")
	if len(digits) == 10 || len(digits) == 12 {
		return digits
	}
	return ""
}

func cleanRevenue(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		return ParseRevenue(val)
	default:
		return 0
	}
}

func cleanRevenueYear(v any) int {
	year := 0
	switch val := v.(type) {
	case int:
		year = val
	case int64:
		year = int(val)
	case float64:
		year = int(val)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err == nil {
			year = parsed
		}
	}
	if year >= 2000 && year <= 2025 {
		return year
	}
	return 2024
}

// cleanSegmentTag tests containment against the enum vocabulary in its
// declared priority order. Unmatched free text defaults to BTL; empty
// input stays empty.
func cleanSegmentTag(segment string) model.SegmentTag {
	if segment == "" {
		return ""
	}
	upper := strings.ToUpper(segment)
	for _, tag := range model.SegmentTags() {
		if strings.Contains(upper, string(tag)) {
			return tag
		}
	}
	return model.SegmentBTL
}

func cleanEmployees(v any) int {
	switch val := v.(type) {
	case int:
		return max(val, 0)
	case int64:
		return max(int(val), 0)
	case float64:
		return max(int(val), 0)
	case string:
		if m := firstIntRe.FindString(val); m != "" {
			count, err := strconv.Atoi(m)
			if err == nil {
				return count
			}
		}
	}
	return 0
}

// cleanURL accepts only a full match of the strict URL grammar; a
// partial or malformed URL is discarded, not salvaged.
func cleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if ValidURL(raw) {
		return raw
	}
	return ""
}

func cleanDescription(desc string) string {
	desc = CleanText(desc)
	if runes := []rune(desc); len(runes) > 300 {
		return string(runes[:300]) + "..."
	}
	return desc
}

// cleanRegion maps the input onto the canonical region table by
// case-insensitive substring, first match wins; unknown regions are
// title-cased as-is.
func (n *Normalizer) cleanRegion(region string) string {
	region = CleanText(region)
	if region == "" {
		return ""
	}
	lower := strings.ToLower(region)
	for _, syn := range n.vocab.RegionSynonyms {
		if strings.Contains(lower, syn.Match) {
			return syn.Canonical
		}
	}
	return n.titleCaser.String(region)
}

// cleanContact prefers a phone number, then an email, then the first 50
// characters of the cleaned text.
func cleanContact(contacts string) string {
	contacts = CleanText(contacts)
	if contacts == "" {
		return ""
	}
	if phone := ExtractPhone(contacts); phone != "" {
		return phone
	}
	if email := ExtractEmail(contacts); email != "" {
		return email
	}
	if runes := []rune(contacts); len(runes) > 50 {
		return string(runes[:50])
	}
	return contacts
}

func stringField(raw model.RawRecord, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}
