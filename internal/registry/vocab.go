// Package registry holds the immutable vocabulary tables the pipeline is
// built from: legal-form lists, region synonyms, source aliases and
// priorities, relevance keywords. Defaults mirror the curated production
// tables; a YAML file can override any of them for isolated testing.
package registry

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

// RegionSynonym maps a lowercase substring to a canonical region name.
// Entries are checked in order; the first containment match wins.
type RegionSynonym struct {
	Match     string `yaml:"match"`
	Canonical string `yaml:"canonical"`
}

// SourceAlias maps provider-specific substrings to one canonical source
// token. Entries are checked in order.
type SourceAlias struct {
	Substrings []string `yaml:"substrings"`
	Token      string   `yaml:"token"`
}

// Vocabulary bundles every lookup table the normalizer, relevance filter
// and resolver need. Treat a Vocabulary as immutable once constructed.
type Vocabulary struct {
	// LegalFormPrefixes are stripped (case-insensitively) from the start
	// of a company name during normalization.
	LegalFormPrefixes []string `yaml:"legal_form_prefixes"`

	// LegalFormTokens are removed as whole words anywhere in a name when
	// preparing it for fuzzy comparison.
	LegalFormTokens []string `yaml:"legal_form_tokens"`

	RegionSynonyms []RegionSynonym `yaml:"region_synonyms"`
	SourceAliases  []SourceAlias   `yaml:"source_aliases"`

	// SourcePriority ranks canonical source tokens by data quality.
	// Unranked sources score 0 during base-record selection.
	SourcePriority map[string]int `yaml:"source_priority"`

	// Keywords is the marketing/BTL terminology used by the relevance
	// filter against description + name.
	Keywords []string `yaml:"keywords"`

	// IndustryCodes lists OKVED codes considered relevant.
	IndustryCodes []string `yaml:"industry_codes"`

	// RelevantSegments lists segment tags that pass the relevance filter.
	RelevantSegments []model.SegmentTag `yaml:"relevant_segments"`
}

// DefaultVocabulary returns the production vocabulary for the Russian
// BTL/marketing agency domain.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		LegalFormPrefixes: []string{
			"ООО", "ЗАО", "ОАО", "АО", "ИП", "ПАО",
			"Общество с ограниченной ответственностью",
		},
		LegalFormTokens: []string{
			"ооо", "зао", "оао", "ао", "ип", "пао",
			"общество с ограниченной ответственностью",
			"закрытое акционерное общество",
			"открытое акционерное общество",
			"акционерное общество",
			"публичное акционерное общество",
			"индивидуальный предприниматель",
		},
		RegionSynonyms: []RegionSynonym{
			{Match: "москва", Canonical: "Москва"},
			{Match: "moscow", Canonical: "Москва"},
			{Match: "спб", Canonical: "Санкт-Петербург"},
			{Match: "санкт-петербург", Canonical: "Санкт-Петербург"},
			{Match: "питер", Canonical: "Санкт-Петербург"},
			{Match: "petersburg", Canonical: "Санкт-Петербург"},
			{Match: "екатеринбург", Canonical: "Екатеринбург"},
			{Match: "новосибирск", Canonical: "Новосибирск"},
			{Match: "казань", Canonical: "Казань"},
			{Match: "нижний новгород", Canonical: "Нижний Новгород"},
			{Match: "ростов-на-дону", Canonical: "Ростов-на-Дону"},
		},
		SourceAliases: []SourceAlias{
			{Substrings: []string{"rrar", "alladvertising"}, Token: "rrar_2025"},
			{Substrings: []string{"marketing-tech", "marketing_tech"}, Token: "marketing_tech"},
			{Substrings: []string{"fns"}, Token: "fns_open_data"},
			{Substrings: []string{"rusprofile"}, Token: "rusprofile"},
			{Substrings: []string{"list-org", "list_org"}, Token: "list_org"},
		},
		SourcePriority: map[string]int{
			"fns_open_data":  5,
			"marketing_tech": 4,
			"rrar_2025":      3,
			"rusprofile":     2,
			"list_org":       1,
		},
		Keywords: []string{
			"btl", "промо", "промоушн", "ивент", "event",
			"мерчендайзинг", "merchandising", "brand activation",
			"активация", "дегустация", "семплинг", "промо-акции",
			"трейд маркетинг", "trade marketing", "pos материалы",
			"стимулирование продаж",
		},
		IndustryCodes: []string{"73.11", "82.30", "47.78.3", "73.20", "82.99"},
		RelevantSegments: model.SegmentTags(),
	}
}

// LoadVocabulary reads a YAML override file on top of the defaults.
// Only non-empty sections replace the default tables.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: read vocabulary %s", path)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, eris.Wrapf(err, "registry: parse vocabulary %s", path)
	}

	vocab := DefaultVocabulary()
	if len(override.LegalFormPrefixes) > 0 {
		vocab.LegalFormPrefixes = override.LegalFormPrefixes
	}
	if len(override.LegalFormTokens) > 0 {
		vocab.LegalFormTokens = override.LegalFormTokens
	}
	if len(override.RegionSynonyms) > 0 {
		vocab.RegionSynonyms = override.RegionSynonyms
	}
	if len(override.SourceAliases) > 0 {
		vocab.SourceAliases = override.SourceAliases
	}
	if len(override.SourcePriority) > 0 {
		vocab.SourcePriority = override.SourcePriority
	}
	if len(override.Keywords) > 0 {
		vocab.Keywords = override.Keywords
	}
	if len(override.IndustryCodes) > 0 {
		vocab.IndustryCodes = override.IndustryCodes
	}
	if len(override.RelevantSegments) > 0 {
		vocab.RelevantSegments = override.RelevantSegments
	}
	return vocab, nil
}

// CanonicalSource lowercases a raw provider string and maps it to the
// canonical source token. Unrecognized sources pass through lowercased;
// empty input becomes "unknown".
func (v *Vocabulary) CanonicalSource(raw string) string {
	if raw == "" {
		return "unknown"
	}
	lower := strings.ToLower(raw)
	for _, alias := range v.SourceAliases {
		for _, sub := range alias.Substrings {
			if strings.Contains(lower, sub) {
				return alias.Token
			}
		}
	}
	return lower
}
