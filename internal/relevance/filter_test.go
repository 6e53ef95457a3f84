package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/registry"
)

func TestRelevant(t *testing.T) {
	t.Parallel()
	f := NewFilter(registry.DefaultVocabulary())

	tests := []struct {
		name string
		rec  model.CompanyRecord
		want bool
	}{
		{
			"segment tag passes",
			model.CompanyRecord{Name: "emg", SegmentTag: model.SegmentFullCycle},
			true,
		},
		{
			"industry code passes",
			model.CompanyRecord{Name: "ЛБЛ", IndustryCode: "73.11"},
			true,
		},
		{
			"keyword in description passes",
			model.CompanyRecord{Name: "Агентство", Description: "промо-акции и мерчендайзинг"},
			true,
		},
		{
			"keyword in name passes",
			model.CompanyRecord{Name: "BTL Group"},
			true,
		},
		{
			"keyword match is case insensitive",
			model.CompanyRecord{Name: "Event Hall", Description: "Brand Activation специалисты"},
			true,
		},
		{
			"irrelevant industry code",
			model.CompanyRecord{Name: "Завод", IndustryCode: "25.11"},
			false,
		},
		{
			"nothing matches",
			model.CompanyRecord{Name: "Столовая", Description: "горячие обеды"},
			false,
		},
		{
			"empty record",
			model.CompanyRecord{},
			false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.Relevant(tt.rec))
		})
	}
}
