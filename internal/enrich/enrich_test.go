package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

func TestMergeRegistryRecords(t *testing.T) {
	t.Parallel()

	records := []model.RawRecord{
		{"name": "LBL", "inn": "7707083893", "revenue": 986_900_000},
		{"name": "Креон"}, // no tax id: untouchable
		{"name": "emg", "inn": "7707123456", "okved_main": "73.11"},
	}
	registryDump := []model.RawRecord{
		{"inn": "7707083893", "okved_main": "73.11", "region": "Москва"},
		{"inn": "7707123456", "okved_main": "82.30"},
		{"inn": "9999999999", "region": "Казань"},
	}

	enriched := MergeRegistryRecords(records, registryDump)
	assert.Equal(t, 1, enriched)

	// Missing keys are filled.
	assert.Equal(t, "73.11", records[0]["okved_main"])
	assert.Equal(t, "Москва", records[0]["region"])
	// Existing values are never overwritten.
	assert.Equal(t, 986_900_000, records[0]["revenue"])
	assert.Equal(t, "73.11", records[2]["okved_main"])
	// No tax id means no match.
	_, ok := records[1]["region"]
	assert.False(t, ok)
}

func TestMergeRegistryRecordsFillsEmptyStrings(t *testing.T) {
	t.Parallel()

	records := []model.RawRecord{
		{"name": "LBL", "inn": "7707083893", "region": ""},
	}
	registryDump := []model.RawRecord{
		{"inn": "77-07 083893", "region": "Москва"}, // formatted id still matches
	}

	enriched := MergeRegistryRecords(records, registryDump)
	assert.Equal(t, 1, enriched)
	assert.Equal(t, "Москва", records[0]["region"])
}

func TestMergeRegistryRecordsEmptyDump(t *testing.T) {
	t.Parallel()

	records := []model.RawRecord{{"name": "LBL", "inn": "7707083893"}}
	assert.Zero(t, MergeRegistryRecords(records, nil))
}
