// Package resolve deduplicates cleaned company records: records believed
// to describe the same real-world entity are grouped and merged into one
// canonical record per entity.
package resolve

import (
	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/registry"
)

// Resolver groups and merges duplicate company records.
type Resolver struct {
	vocab          *registry.Vocabulary
	thresholds     Thresholds
	sourcePriority map[string]int
}

// NewResolver builds a Resolver from the vocabulary (legal-form tokens
// and source priorities) and the fuzzy-match thresholds.
func NewResolver(vocab *registry.Vocabulary, thresholds Thresholds) *Resolver {
	return &Resolver{
		vocab:          vocab,
		thresholds:     thresholds,
		sourcePriority: vocab.SourcePriority,
	}
}

// Resolve reduces the input to one canonical record per believed-distinct
// entity. Records with a tax id are grouped by exact tax-id equality;
// the tax id is authoritative and skips fuzzy matching entirely. The
// remainder goes through greedy fuzzy name grouping. The two passes are
// independent: an entity appearing once with a tax id and once without
// is deliberately not merged across them.
func (r *Resolver) Resolve(records []model.CompanyRecord) []model.CompanyRecord {
	if len(records) == 0 {
		return nil
	}

	taxGroups, taxOrder := r.groupByTaxID(records)

	var noTaxID []model.CompanyRecord
	for _, rec := range records {
		if rec.TaxID == "" {
			noTaxID = append(noTaxID, rec)
		}
	}
	nameGroups := r.groupBySimilarity(noTaxID)

	resolved := make([]model.CompanyRecord, 0, len(taxOrder)+len(nameGroups))
	for _, taxID := range taxOrder {
		resolved = append(resolved, r.mergeGroup(taxGroups[taxID]))
	}
	for _, group := range nameGroups {
		resolved = append(resolved, r.mergeGroup(group))
	}

	zap.L().Info("resolve: deduplication complete",
		zap.Int("input", len(records)),
		zap.Int("output", len(resolved)),
		zap.Int("tax_id_groups", len(taxOrder)),
		zap.Int("fuzzy_groups", len(nameGroups)),
	)
	return resolved
}

// groupByTaxID partitions records with a non-empty tax id by exact
// equality, preserving first-encounter order of the keys.
func (r *Resolver) groupByTaxID(records []model.CompanyRecord) (map[string][]model.CompanyRecord, []string) {
	groups := make(map[string][]model.CompanyRecord)
	var order []string
	for _, rec := range records {
		if rec.TaxID == "" {
			continue
		}
		if _, ok := groups[rec.TaxID]; !ok {
			order = append(order, rec.TaxID)
		}
		groups[rec.TaxID] = append(groups[rec.TaxID], rec)
	}
	return groups, order
}

// groupBySimilarity clusters tax-id-less records by fuzzy name match in
// a single greedy pass: the first unassigned record anchors a new group
// and every later unassigned record similar to the anchor joins it.
// Similarity is tested against the anchor only, never transitively
// against other members; that approximation is intentional and keeps
// the pass order-dependent.
func (r *Resolver) groupBySimilarity(records []model.CompanyRecord) [][]model.CompanyRecord {
	var groups [][]model.CompanyRecord
	assigned := make([]bool, len(records))

	for i := range records {
		if assigned[i] {
			continue
		}
		group := []model.CompanyRecord{records[i]}
		assigned[i] = true
		anchor := NormalizeForMatch(records[i].Name, r.vocab)

		for j := i + 1; j < len(records); j++ {
			if assigned[j] {
				continue
			}
			candidate := NormalizeForMatch(records[j].Name, r.vocab)
			if r.thresholds.similar(anchor, candidate) {
				group = append(group, records[j])
				assigned[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}
