package resolve

import (
	"strings"

	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

// mergeRules is the field-level conflict policy, one rule per canonical
// column. Kept as an explicit table so each field's policy is testable
// on its own.
var mergeRules = []struct {
	field string
	apply func(base *model.CompanyRecord, incoming model.CompanyRecord)
}{
	{"inn", fillString(func(r *model.CompanyRecord) *string { return &r.TaxID })},
	{"name", fillString(func(r *model.CompanyRecord) *string { return &r.Name })},
	{"revenue_year", func(base *model.CompanyRecord, incoming model.CompanyRecord) {
		if base.RevenueYear == 0 {
			base.RevenueYear = incoming.RevenueYear
		}
	}},
	{"revenue", func(base *model.CompanyRecord, incoming model.CompanyRecord) {
		base.Revenue = mergeNumeric(base.Revenue, incoming.Revenue)
	}},
	{"segment_tag", func(base *model.CompanyRecord, incoming model.CompanyRecord) {
		if base.SegmentTag == "" {
			base.SegmentTag = incoming.SegmentTag
		}
	}},
	{"okved_main", fillString(func(r *model.CompanyRecord) *string { return &r.IndustryCode })},
	{"employees", func(base *model.CompanyRecord, incoming model.CompanyRecord) {
		base.EmployeeCount = int(mergeNumeric(float64(base.EmployeeCount), float64(incoming.EmployeeCount)))
	}},
	{"site", fillString(func(r *model.CompanyRecord) *string { return &r.Website })},
	{"description", func(base *model.CompanyRecord, incoming model.CompanyRecord) {
		if len(incoming.Description) > len(base.Description) {
			base.Description = incoming.Description
		}
	}},
	{"region", fillString(func(r *model.CompanyRecord) *string { return &r.Region })},
	{"contacts", fillString(func(r *model.CompanyRecord) *string { return &r.Contact })},
	{"rating_ref", fillString(func(r *model.CompanyRecord) *string { return &r.RatingRef })},
}

// fillString is the default policy: take the incoming value only when
// the base field is empty.
func fillString(access func(*model.CompanyRecord) *string) func(*model.CompanyRecord, model.CompanyRecord) {
	return func(base *model.CompanyRecord, incoming model.CompanyRecord) {
		dst := access(base)
		if *dst == "" {
			src := incoming
			*dst = *access(&src)
		}
	}
}

// mergeNumeric keeps the larger value, except that a zero base is always
// replaced: zero means "unknown", so any data beats it.
func mergeNumeric(base, incoming float64) float64 {
	if base == 0 {
		return incoming
	}
	if incoming > base {
		return incoming
	}
	return base
}

// foldRecord folds one incoming record into the base by applying every
// field rule.
func foldRecord(base *model.CompanyRecord, incoming model.CompanyRecord) {
	for _, rule := range mergeRules {
		rule.apply(base, incoming)
	}
}

// mergeGroup folds a group of records for one entity into a single
// canonical record. The base record is the highest scoring member; every
// other member is folded in left-to-right; the source field becomes the
// comma-joined list of distinct source tokens in first-encounter order.
func (r *Resolver) mergeGroup(group []model.CompanyRecord) model.CompanyRecord {
	if len(group) == 1 {
		return group[0]
	}

	baseIdx := r.selectBase(group)
	merged := group[baseIdx]

	for i, rec := range group {
		if i == baseIdx {
			continue
		}
		foldRecord(&merged, rec)
	}

	merged.Source = joinSources(group, merged.Source)

	zap.L().Debug("resolve: merged duplicate group",
		zap.String("name", merged.Name),
		zap.Int("members", len(group)),
		zap.String("sources", merged.Source),
	)
	return merged
}

// selectBase returns the index of the record with the most complete and
// most trusted data: filled-field count, plus the source priority rank,
// plus 10 for a known revenue, plus 5 for a tax id. Ties keep the
// first-seen record.
func (r *Resolver) selectBase(group []model.CompanyRecord) int {
	best, bestScore := 0, -1
	for i, rec := range group {
		score := rec.FilledFieldCount() + r.sourcePriority[rec.Source]
		if rec.Revenue > 0 {
			score += 10
		}
		if rec.TaxID != "" {
			score += 5
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// joinSources collects the distinct source tokens across the group in
// first-encounter order.
func joinSources(group []model.CompanyRecord, fallback string) string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, rec := range group {
		if rec.Source == "" {
			continue
		}
		if _, ok := seen[rec.Source]; ok {
			continue
		}
		seen[rec.Source] = struct{}{}
		tokens = append(tokens, rec.Source)
	}
	if len(tokens) == 0 {
		return fallback
	}
	return strings.Join(tokens, ", ")
}
