package model

// Property is the canonical normalized listing record. It is created once per
// raw record by the normalizer and is immutable afterwards, except that
// Analysis is attached out-of-band by the batch analyzer.
type Property struct {
	ID            string     `json:"id"`
	Title         *string    `json:"title"`
	Price         float64    `json:"price"`
	PriceCurrency string     `json:"priceCurrency"`
	PricePerM2    float64    `json:"pricePerM2"`
	City          string     `json:"city"`
	Voivodeship   string     `json:"voivodeship"`
	District      *string    `json:"district"`
	Bedrooms      *int       `json:"bedrooms"`
	AreaM2        float64    `json:"areaM2"`
	Features      FeatureSet `json:"features"`
	Description   string     `json:"description"`
	Media         []string   `json:"media"`
	Analysis      *Analysis  `json:"analysis,omitempty"`
}

// Analysis is the per-listing result produced by the batch analyzer. Exactly
// one group of fields is populated: the three structured keys on success, Raw
// when the model responded with something that is not JSON, Error when the
// oracle call itself failed, and Pending in placeholder (no-LLM) mode.
type Analysis struct {
	Summary        string `json:"summary,omitempty"`
	Condition      string `json:"condition,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Raw            string `json:"raw,omitempty"`
	Error          string `json:"error,omitempty"`
	Pending        string `json:"analysis,omitempty"`
}
