package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey enumerates the supported orderings.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// NormalizeSort maps a raw sort parameter onto a SortKey. Unknown values fall
// back to relevance, which leaves the filtered order untouched.
func NormalizeSort(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortNameAsc:
		return SortNameAsc
	case SortNameDesc:
		return SortNameDesc
	default:
		return SortRelevance
	}
}

// Query captures the transient browse state derived from navigation input.
type Query struct {
	Category string
	Search   string
	Sort     SortKey
}

// QueryOutcome classifies a pipeline run for the presentation layer.
type QueryOutcome string

const (
	// QueryOK means the filters applied as requested.
	QueryOK QueryOutcome = "ok"
	// QueryFallback means the category matched nothing and a fixed-size
	// prefix of the unfiltered catalog was substituted. Callers should
	// surface this as a degenerate-result notice rather than a normal list.
	QueryFallback QueryOutcome = "fallback"
)

// Result is the ordered product list plus the run classification.
type Result struct {
	Products []Product
	Outcome  QueryOutcome
}

// Run executes the three-stage pipeline: category narrowing, text search,
// sort. It is pure and always starts from the full catalog; the input slice
// is never mutated.
func Run(products []Product, q Query, fallbackSize int) Result {
	outcome := QueryOK

	filtered := products
	if category := strings.TrimSpace(q.Category); category != "" {
		filtered = narrowByCategory(products, category)
		if len(filtered) == 0 && len(products) > 0 {
			// Degenerate behavior carried over from the storefront: show a
			// small prefix of the catalog instead of an empty shelf, and let
			// the outcome tell the caller it happened.
			if fallbackSize < 1 {
				fallbackSize = 4
			}
			if fallbackSize > len(products) {
				fallbackSize = len(products)
			}
			filtered = products[:fallbackSize]
			outcome = QueryFallback
		}
	}

	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		matched := make([]Product, 0, len(filtered))
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Name), term) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	out := make([]Product, len(filtered))
	copy(out, filtered)
	sortProducts(out, q.Sort)

	return Result{Products: out, Outcome: outcome}
}

// narrowByCategory keeps products whose lowercased name or slug contains any
// of the terms obtained by splitting the category slug on "-".
func narrowByCategory(products []Product, category string) []Product {
	terms := strings.Split(strings.ToLower(category), "-")
	kept := make([]Product, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)
		slug := strings.ToLower(p.Slug)
		for _, term := range terms {
			if term == "" {
				continue
			}
			if strings.Contains(name, term) || strings.Contains(slug, term) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool { return c.CompareString(products[i].Name, products[j].Name) < 0 })
	case SortNameDesc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool { return c.CompareString(products[i].Name, products[j].Name) > 0 })
	default:
		// relevance: identity order from the filter stages.
	}
}
