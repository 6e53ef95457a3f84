// Package relevance decides whether a cleaned company record belongs to
// the BTL/marketing domain at all.
package relevance

import (
	"strings"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/registry"
)

// Filter is a stateless relevance predicate over CompanyRecords.
type Filter struct {
	segments map[model.SegmentTag]struct{}
	codes    []string
	keywords []string
}

// NewFilter builds a Filter from the vocabulary's relevant segments,
// industry codes and keyword list.
func NewFilter(vocab *registry.Vocabulary) *Filter {
	segments := make(map[model.SegmentTag]struct{}, len(vocab.RelevantSegments))
	for _, tag := range vocab.RelevantSegments {
		segments[tag] = struct{}{}
	}
	return &Filter{
		segments: segments,
		codes:    vocab.IndustryCodes,
		keywords: vocab.Keywords,
	}
}

// Relevant is a short-circuit OR of three heuristics, cheapest first:
// segment tag membership, industry code substring, keyword match over
// description + name.
func (f *Filter) Relevant(rec model.CompanyRecord) bool {
	if _, ok := f.segments[rec.SegmentTag]; ok {
		return true
	}

	if rec.IndustryCode != "" {
		for _, code := range f.codes {
			if strings.Contains(rec.IndustryCode, code) {
				return true
			}
		}
	}

	haystack := strings.ToLower(rec.Description + " " + rec.Name)
	for _, kw := range f.keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
