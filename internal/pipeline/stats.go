package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

// FormatSummary renders a human-readable report over the final records:
// segment and source distribution, revenue statistics, top regions and
// field fill rates.
func FormatSummary(records []model.CompanyRecord) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("COLLECTED COMPANIES SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total companies: %d\n", len(records))

	if len(records) == 0 {
		b.WriteString(rule + "\n")
		return b.String()
	}

	writeDistribution(&b, "Segments", records, func(r model.CompanyRecord) string {
		return string(r.SegmentTag)
	})
	writeDistribution(&b, "Sources", records, func(r model.CompanyRecord) string {
		return r.Source
	})

	writeRevenueStats(&b, records)
	writeTopRegions(&b, records, 5)
	writeFillRates(&b, records)

	b.WriteString(rule + "\n")
	return b.String()
}

func writeDistribution(b *strings.Builder, title string, records []model.CompanyRecord, key func(model.CompanyRecord) string) {
	counts := make(map[string]int)
	for _, rec := range records {
		if k := key(rec); k != "" {
			counts[k]++
		}
	}
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, kc := range sortedByCount(counts) {
		fmt.Fprintf(b, "  %s: %d\n", kc.key, kc.count)
	}
}

func writeRevenueStats(b *strings.Builder, records []model.CompanyRecord) {
	var revenues []float64
	for _, rec := range records {
		if rec.Revenue > 0 {
			revenues = append(revenues, rec.Revenue)
		}
	}
	if len(revenues) == 0 {
		return
	}
	sort.Float64s(revenues)

	sum := 0.0
	for _, r := range revenues {
		sum += r
	}
	median := revenues[len(revenues)/2]
	if len(revenues)%2 == 0 {
		median = (revenues[len(revenues)/2-1] + revenues[len(revenues)/2]) / 2
	}

	fmt.Fprintf(b, "\nRevenue (%d companies with data):\n", len(revenues))
	fmt.Fprintf(b, "  min:    %.0f\n", revenues[0])
	fmt.Fprintf(b, "  max:    %.0f\n", revenues[len(revenues)-1])
	fmt.Fprintf(b, "  mean:   %.0f\n", sum/float64(len(revenues)))
	fmt.Fprintf(b, "  median: %.0f\n", median)
}

func writeTopRegions(b *strings.Builder, records []model.CompanyRecord, limit int) {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.Region != "" {
			counts[rec.Region]++
		}
	}
	if len(counts) == 0 {
		return
	}
	top := sortedByCount(counts)
	if len(top) > limit {
		top = top[:limit]
	}
	fmt.Fprintf(b, "\nTop regions:\n")
	for _, kc := range top {
		fmt.Fprintf(b, "  %s: %d\n", kc.key, kc.count)
	}
}

func writeFillRates(b *strings.Builder, records []model.CompanyRecord) {
	fields := []string{"inn", "revenue", "site", "contacts", "okved_main"}
	fmt.Fprintf(b, "\nField fill rates:\n")
	for _, field := range fields {
		filled := 0
		for _, rec := range records {
			switch v := rec.AsMap()[field].(type) {
			case string:
				if v != "" {
					filled++
				}
			case float64:
				if v != 0 {
					filled++
				}
			case int:
				if v != 0 {
					filled++
				}
			}
		}
		pct := float64(filled) / float64(len(records)) * 100
		fmt.Fprintf(b, "  %s: %d/%d (%.1f%%)\n", field, filled, len(records), pct)
	}
}

type keyCount struct {
	key   string
	count int
}

// sortedByCount orders descending by count, then by key for stable
// output.
func sortedByCount(counts map[string]int) []keyCount {
	out := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, keyCount{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}
