// Package enrich fills gaps in collected raw records from a registry
// dump (FNS open data) before cleaning. Matching is by tax id only;
// existing values are never overwritten.
package enrich

import (
	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/normalize"
)

// MergeRegistryRecords enriches collected records in place from the
// registry dump, indexed by cleaned tax id. Only missing or empty keys
// are filled. Returns the number of records that were enriched.
func MergeRegistryRecords(records, registryDump []model.RawRecord) int {
	index := make(map[string]model.RawRecord, len(registryDump))
	for _, reg := range registryDump {
		if taxID := normalize.CleanTaxID(reg["inn"]); taxID != "" {
			index[taxID] = reg
		}
	}
	if len(index) == 0 {
		return 0
	}

	enriched := 0
	for _, rec := range records {
		taxID := normalize.CleanTaxID(rec["inn"])
		if taxID == "" {
			continue
		}
		reg, ok := index[taxID]
		if !ok {
			continue
		}
		touched := false
		for key, value := range reg {
			if existing, present := rec[key]; !present || isEmpty(existing) {
				rec[key] = value
				touched = true
			}
		}
		if touched {
			enriched++
		}
	}

	zap.L().Info("enrich: registry merge complete",
		zap.Int("registry_records", len(index)),
		zap.Int("enriched", enriched),
	)
	return enriched
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	default:
		return false
	}
}
