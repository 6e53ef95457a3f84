package pipeline

import "github.com/djrooz/btl-agency-scraper/internal/model"

// PassesRevenueGate is the terminal business-rule filter: a record
// passes with an unknown revenue (0, benefit of the doubt) or a revenue
// at or above the minimum.
func PassesRevenueGate(rec model.CompanyRecord, minRevenue float64) bool {
	return rec.Revenue == 0 || rec.Revenue >= minRevenue
}
