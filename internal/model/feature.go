package model

// FeatureSet is the closed vocabulary of boolean feature flags the normalizer
// derives from listing free text. Keeping it a fixed struct (rather than an open
// map) means unknown keys can never leak into the filter engine's feature loop.
type FeatureSet struct {
	Balcony         bool `json:"balcony"`
	Basement        bool `json:"basement"`
	Garden          bool `json:"garden"`
	Terrace         bool `json:"terrace"`
	Parking         bool `json:"parking"`
	Elevator        bool `json:"elevator"`
	Bathtub         bool `json:"bathtub"`
	AirConditioning bool `json:"air_conditioning"`
	Intercom        bool `json:"intercom"`
	SeparateKitchen bool `json:"separate_kitchen"`
	Security        bool `json:"security"`
}

// featureSynonyms maps each feature name to the Polish keywords that mark it in
// listing descriptions and additional-info values. Matching is case-insensitive
// substring matching; the list is treated as exhaustive.
var featureSynonyms = map[string][]string{
	"balcony":          {"balkon"},
	"basement":         {"piwnica"},
	"garden":           {"ogród", "ogródek"},
	"terrace":          {"taras"},
	"parking":          {"parking", "garaż", "miejsce postojowe"},
	"elevator":         {"winda"},
	"bathtub":          {"wanna"},
	"air_conditioning": {"klimatyzacja"},
	"intercom":         {"domofon", "wideofon"},
	"separate_kitchen": {"oddzielna kuchnia"},
	"security":         {"monitoring", "ochrona"},
}

// featureNames is the stable iteration order for the vocabulary.
var featureNames = []string{
	"balcony", "basement", "garden", "terrace", "parking", "elevator",
	"bathtub", "air_conditioning", "intercom", "separate_kitchen", "security",
}

// FeatureNames returns the feature vocabulary in stable order.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// FeatureSynonyms returns the keyword list for a feature name.
func FeatureSynonyms(name string) []string {
	return featureSynonyms[name]
}

// Flag returns the value of the named feature and whether the name belongs to
// the vocabulary at all. Unknown names report known=false so callers can treat
// them as "no constraint".
func (f FeatureSet) Flag(name string) (value, known bool) {
	switch name {
	case "balcony":
		return f.Balcony, true
	case "basement":
		return f.Basement, true
	case "garden":
		return f.Garden, true
	case "terrace":
		return f.Terrace, true
	case "parking":
		return f.Parking, true
	case "elevator":
		return f.Elevator, true
	case "bathtub":
		return f.Bathtub, true
	case "air_conditioning":
		return f.AirConditioning, true
	case "intercom":
		return f.Intercom, true
	case "separate_kitchen":
		return f.SeparateKitchen, true
	case "security":
		return f.Security, true
	}
	return false, false
}

// Set assigns the named feature flag. Unknown names are ignored.
func (f *FeatureSet) Set(name string, value bool) {
	switch name {
	case "balcony":
		f.Balcony = value
	case "basement":
		f.Basement = value
	case "garden":
		f.Garden = value
	case "terrace":
		f.Terrace = value
	case "parking":
		f.Parking = value
	case "elevator":
		f.Elevator = value
	case "bathtub":
		f.Bathtub = value
	case "air_conditioning":
		f.AirConditioning = value
	case "intercom":
		f.Intercom = value
	case "separate_kitchen":
		f.SeparateKitchen = value
	case "security":
		f.Security = value
	}
}
