package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chibuzordev/owlow/internal/config"
	"github.com/chibuzordev/owlow/internal/model"
	"github.com/chibuzordev/owlow/internal/utils"
)

const filterSchemaPrompt = `You are an expert real estate AI filter builder.
Output strict JSON with:
{"city": null|"string","voivodeship":null|"string","district":null|"string",
 "bedrooms":null|"int","price_min":null|"int","price_max":null|"int",
 "area_min":null|"int","area_max":null|"int","features":{},"keywords":[]}
%s
Return JSON only, no explanation.`

// FilterInterpreter converts free-text queries into fully-populated Filter
// objects, using the language model as an extraction oracle with deterministic
// post-processing. Parse never fails: oracle breakage degrades to a default
// filter carrying an inert error field.
type FilterInterpreter struct {
	oracle    Oracle
	model     string
	maxTokens int
	log       *logrus.Logger
}

// NewFilterInterpreter creates a new interpreter bound to an oracle handle.
func NewFilterInterpreter(oracle Oracle, cfg *config.OpenAIConfig, log *logrus.Logger) *FilterInterpreter {
	return &FilterInterpreter{
		oracle:    oracle,
		model:     cfg.FilterModel,
		maxTokens: cfg.FilterMaxTokens,
		log:       log,
	}
}

// Parse extracts a Filter from a natural language query. columnHints, when
// supplied, is the literal list of available field names and biases the
// extraction toward known columns.
func (p *FilterInterpreter) Parse(ctx context.Context, query string, columnHints []string) *model.Filter {
	schemaHint := ""
	if len(columnHints) > 0 {
		schemaHint = fmt.Sprintf("Available fields: %s.", strings.Join(columnHints, ", "))
	}

	systemPrompt := fmt.Sprintf(filterSchemaPrompt, schemaHint)
	userPrompt := fmt.Sprintf("User query: %s\nReturn JSON.", query)

	raw, err := p.oracle.Complete(ctx, p.model, systemPrompt, userPrompt, p.maxTokens)
	if err != nil {
		p.log.WithError(err).Warn("filter extraction failed, returning default filter")
		return coerceFilter(map[string]any{"error": err.Error()})
	}

	var extracted map[string]any
	if err := utils.ParseAIJSON(raw, &extracted); err != nil {
		p.log.WithField("response", raw).Warn("no JSON object in model response")
		extracted = map[string]any{"error": "no_json"}
	}

	return coerceFilter(extracted)
}

// coerceFilter is the single defaulting/coercion step between the oracle's
// loose output and the typed Filter the engine consumes. Numeric range fields
// that fail coercion become nil rather than the default: an unknown bound
// beats a wrong one.
func coerceFilter(raw map[string]any) *model.Filter {
	f := model.DefaultFilter()

	if v, ok := raw["city"]; ok {
		f.City = coerceString(v)
	}
	if v, ok := raw["voivodeship"]; ok {
		f.Voivodeship = coerceString(v)
	}
	if v, ok := raw["district"]; ok {
		f.District = coerceString(v)
	}
	if v, ok := raw["bedrooms"]; ok {
		f.Bedrooms = coerceInt(v)
	}
	if v, ok := raw["price_min"]; ok {
		f.PriceMin = coerceFloat(v)
	}
	if v, ok := raw["price_max"]; ok {
		f.PriceMax = coerceFloat(v)
	}
	if v, ok := raw["area_min"]; ok {
		f.AreaMin = coerceFloat(v)
	}
	if v, ok := raw["area_max"]; ok {
		f.AreaMax = coerceFloat(v)
	}
	if v, ok := raw["features"]; ok {
		f.Features = coerceFeatures(v)
	}
	if v, ok := raw["keywords"]; ok {
		f.Keywords = coerceKeywords(v)
	}
	if msg, ok := raw["error"].(string); ok {
		f.Error = msg
	}

	return f
}

func coerceString(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func coerceInt(v any) *int {
	switch val := v.(type) {
	case float64:
		i := int(val)
		return &i
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return &i
		}
	}
	return nil
}

func coerceFloat(v any) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return &f
		}
	}
	return nil
}

// coerceFeatures accepts either a list of feature names (meaning all wanted)
// or a name->value mapping; anything else resets to no feature constraints.
func coerceFeatures(v any) map[string]bool {
	switch val := v.(type) {
	case []any:
		out := make(map[string]bool, len(val))
		for _, item := range val {
			if name, ok := item.(string); ok {
				out[name] = true
			}
		}
		return out
	case map[string]any:
		out := make(map[string]bool, len(val))
		for name, want := range val {
			out[name] = truthy(want)
		}
		return out
	default:
		return map[string]bool{}
	}
}

func coerceKeywords(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return false
	}
}
