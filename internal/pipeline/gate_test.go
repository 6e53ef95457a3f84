package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

func TestPassesRevenueGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		revenue    float64
		minRevenue float64
		want       bool
	}{
		{"unknown revenue passes", 0, 200_000_000, true},
		{"above minimum passes", 500_000_000, 200_000_000, true},
		{"exactly minimum passes", 200_000_000, 200_000_000, true},
		{"below minimum fails", 150_000, 200_000_000, false},
		{"gate disabled", 1, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := model.CompanyRecord{Name: "x", Revenue: tt.revenue}
			assert.Equal(t, tt.want, PassesRevenueGate(rec, tt.minRevenue))
		})
	}
}
