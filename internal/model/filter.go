package model

// Filter is the fully-typed search intent derived from a free-text query.
// Every field is always present on the wire (no omitempty): nil pointers mean
// "no constraint". The interpreter is the only producer and guarantees the
// defaults below before a Filter ever reaches the engine.
type Filter struct {
	City        *string         `json:"city"`
	Voivodeship *string         `json:"voivodeship"`
	District    *string         `json:"district"`
	Bedrooms    *int            `json:"bedrooms"`
	PriceMin    *float64        `json:"price_min"`
	PriceMax    *float64        `json:"price_max"`
	AreaMin     *float64        `json:"area_min"`
	AreaMax     *float64        `json:"area_max"`
	Features    map[string]bool `json:"features"`
	Keywords    []string        `json:"keywords"`

	// Error carries the oracle failure reason when extraction degraded.
	// Downstream filtering ignores it.
	Error string `json:"error,omitempty"`
}

// DefaultFilter returns a filter with every key present at its documented
// default: no location or bedroom constraints, zero minimums, open maximums,
// no feature or keyword constraints.
func DefaultFilter() *Filter {
	zero := 0.0
	minPrice, minArea := zero, zero
	return &Filter{
		PriceMin: &minPrice,
		AreaMin:  &minArea,
		Features: map[string]bool{},
		Keywords: []string{},
	}
}

// RecommendResponse is the shape returned to the transport layer by the
// recommendation pipeline.
type RecommendResponse struct {
	Filters *Filter    `json:"filters"`
	Results []Property `json:"results"`
	Advisor string     `json:"advisor"`
}

// AnalyzeResponse is the shape returned by the batch analysis job.
type AnalyzeResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
