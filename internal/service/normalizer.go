package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/chibuzordev/owlow/internal/model"
	"github.com/chibuzordev/owlow/internal/utils"
)

// Normalizer converts raw, loosely-structured listing records into canonical
// Property entities. Normalize is total: missing or malformed fields degrade
// to safe defaults instead of failing.
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize builds a Property from one raw record.
func (n *Normalizer) Normalize(record map[string]any) model.Property {
	location := subMap(record, "location")
	pricePerM2 := subMap(record, "pricePerM2")

	description := stringOr(record["description"], "")

	blob := n.textBlob(record, description)

	var features model.FeatureSet
	for _, name := range model.FeatureNames() {
		for _, keyword := range model.FeatureSynonyms(name) {
			if strings.Contains(blob, keyword) {
				features.Set(name, true)
				break
			}
		}
	}

	id := stringOr(record["sourceId"], "")
	if id == "" {
		id = stringOr(record["id"], "")
	}

	currency := stringOr(pricePerM2["currency"], "")
	if currency == "" {
		currency = "PLN"
	}

	return model.Property{
		ID:            id,
		Title:         optString(record["title"]),
		Price:         floatOr(record["price"], 0),
		PriceCurrency: currency,
		PricePerM2:    floatOr(pricePerM2["value"], 0),
		City:          utils.Capitalize(stringOr(location["city"], "")),
		Voivodeship:   utils.Capitalize(stringOr(location["voivodeship"], "")),
		District:      optString(location["district"]),
		Bedrooms:      optInt(record["bedrooms"]),
		AreaM2:        floatOr(record["areaM2"], 0),
		Features:      features,
		Description:   description,
		Media:         imageURLs(record["media"]),
	}
}

// textBlob builds the lowercase haystack feature keywords are matched against:
// every additionalInfo value (stringified) plus the description.
func (n *Normalizer) textBlob(record map[string]any, description string) string {
	var parts []string
	if items, ok := record["additionalInfo"].([]any); ok {
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			parts = append(parts, stringify(entry["value"]))
		}
	}
	return strings.ToLower(strings.Join(parts, " ") + " " + description)
}

// stringify flattens an additionalInfo value: maps become "key:value" pairs,
// lists are space-joined, scalars are printed as-is. Map keys are sorted so
// the blob is deterministic.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s:%v", k, val[k]))
		}
		return strings.Join(pairs, " ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// imageURLs keeps media entries whose kind is "image", preserving order.
func imageURLs(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	urls := make([]string, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if stringOr(entry["kind"], "") != "image" {
			continue
		}
		if url := stringOr(entry["url"], ""); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

func subMap(record map[string]any, key string) map[string]any {
	if m, ok := record[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func optString(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func floatOr(v any, fallback float64) float64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return fallback
		}
		return val
	case int:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return fallback
}

func optInt(v any) *int {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return nil
		}
		i := int(val)
		return &i
	case int:
		i := val
		return &i
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		if i, err := strconv.Atoi(trimmed); err == nil {
			return &i
		}
	}
	return nil
}
