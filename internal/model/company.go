package model

// RawRecord is a single company record as delivered by a collector:
// a flat mapping of field names to untyped values. Collectors disagree on
// types (revenue may arrive as "500 млн" or as a number) and on which
// fields are present at all.
type RawRecord map[string]any

// SegmentTag classifies the marketing segment an agency operates in.
type SegmentTag string

// Segment tags in fixed priority order. When a free-text segment value
// matches several tags, the first one in this order wins.
const (
	SegmentBTL       SegmentTag = "BTL"
	SegmentSouvenir  SegmentTag = "SOUVENIR"
	SegmentFullCycle SegmentTag = "FULL_CYCLE"
	SegmentCommGroup SegmentTag = "COMM_GROUP"
	SegmentEvent     SegmentTag = "EVENT"
	SegmentPromo     SegmentTag = "PROMO"
)

// SegmentTags returns all valid tags in their declared priority order.
func SegmentTags() []SegmentTag {
	return []SegmentTag{
		SegmentBTL,
		SegmentSouvenir,
		SegmentFullCycle,
		SegmentCommGroup,
		SegmentEvent,
		SegmentPromo,
	}
}

// CompanyRecord is the canonical, typed company record the pipeline
// produces. Once the normalizer emits it the record is only mutated by
// field replacement during a merge.
type CompanyRecord struct {
	TaxID         string     `json:"inn"`
	Name          string     `json:"name"`
	RevenueYear   int        `json:"revenue_year"`
	Revenue       float64    `json:"revenue"` // 0 means "unknown", not zero income
	SegmentTag    SegmentTag `json:"segment_tag"`
	Source        string     `json:"source"`
	IndustryCode  string     `json:"okved_main"`
	EmployeeCount int        `json:"employees"`
	Website       string     `json:"site"`
	Description   string     `json:"description"`
	Region        string     `json:"region"`
	Contact       string     `json:"contacts"`
	RatingRef     string     `json:"rating_ref"`
}

// Columns lists the record fields in the canonical export order.
func Columns() []string {
	return []string{
		"inn", "name", "revenue_year", "revenue", "segment_tag", "source",
		"okved_main", "employees", "site", "description", "region",
		"contacts", "rating_ref",
	}
}

// AsMap flattens the record into a field-name keyed mapping, matching
// the canonical column names.
func (r CompanyRecord) AsMap() map[string]any {
	return map[string]any{
		"inn":          r.TaxID,
		"name":         r.Name,
		"revenue_year": r.RevenueYear,
		"revenue":      r.Revenue,
		"segment_tag":  string(r.SegmentTag),
		"source":       r.Source,
		"okved_main":   r.IndustryCode,
		"employees":    r.EmployeeCount,
		"site":         r.Website,
		"description":  r.Description,
		"region":       r.Region,
		"contacts":     r.Contact,
		"rating_ref":   r.RatingRef,
	}
}

// FilledFieldCount returns how many fields carry data: non-empty strings
// and non-zero numbers.
func (r CompanyRecord) FilledFieldCount() int {
	count := 0
	for _, v := range r.AsMap() {
		switch val := v.(type) {
		case string:
			if val != "" {
				count++
			}
		case int:
			if val != 0 {
				count++
			}
		case float64:
			if val != 0 {
				count++
			}
		}
	}
	return count
}
