package service

import (
	"sort"
	"strings"

	"github.com/chibuzordev/owlow/internal/model"
)

// FilterEngine applies a Filter to a normalized dataset. It is deterministic,
// involves no model calls, and preserves input order.
type FilterEngine struct{}

// NewFilterEngine creates a new filter engine
func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// Apply returns the subset of props matching every supplied constraint.
// A constraint is applied only when its filter value is truthy, so an explicit
// zero for bedrooms, price_min, or area_min acts as "no constraint". That
// quirk is load-bearing: callers rely on it and tests pin it.
func (e *FilterEngine) Apply(props []model.Property, f *model.Filter) []model.Property {
	if f == nil {
		return props
	}

	out := make([]model.Property, 0, len(props))
	for _, p := range props {
		if e.matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func (e *FilterEngine) matches(p model.Property, f *model.Filter) bool {
	if f.City != nil && *f.City != "" && !strings.EqualFold(p.City, *f.City) {
		return false
	}
	if f.Voivodeship != nil && *f.Voivodeship != "" && !strings.EqualFold(p.Voivodeship, *f.Voivodeship) {
		return false
	}
	if f.Bedrooms != nil && *f.Bedrooms != 0 {
		if p.Bedrooms == nil || *p.Bedrooms != *f.Bedrooms {
			return false
		}
	}
	if f.PriceMax != nil && *f.PriceMax != 0 && p.Price > *f.PriceMax {
		return false
	}
	if f.PriceMin != nil && *f.PriceMin != 0 && p.Price < *f.PriceMin {
		return false
	}
	if f.AreaMax != nil && *f.AreaMax != 0 && p.AreaM2 > *f.AreaMax {
		return false
	}
	if f.AreaMin != nil && *f.AreaMin != 0 && p.AreaM2 < *f.AreaMin {
		return false
	}

	for name, want := range f.Features {
		if !want {
			// Features requested false never exclude.
			continue
		}
		value, known := p.Features.Flag(name)
		if !known {
			// Unknown names are outside the vocabulary; ignore.
			continue
		}
		if !value {
			return false
		}
	}

	return true
}

// RankByPrice returns at most n properties sorted by ascending price. The sort
// is stable so equal-priced listings keep their dataset order.
func RankByPrice(props []model.Property, n int) []model.Property {
	ranked := make([]model.Property, len(props))
	copy(ranked, props)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price < ranked[j].Price
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
