package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureProducts() []Product {
	return []Product{
		{ID: "1", Slug: "fresh-avocado", Name: "Fresh Avocado Hass Variety", Price: 1.99},
		{ID: "2", Slug: "organic-bananas", Name: "Organic Bananas Bunch", Price: 2.49},
		{ID: "3", Slug: "whole-milk", Name: "Fresh Whole Milk Grade A", Price: 3.29},
		{ID: "4", Slug: "sourdough-bread", Name: "Artisan Sourdough Bread Loaf", Price: 4.99},
		{ID: "5", Slug: "free-range-eggs", Name: "Large Free-Range Eggs", Price: 3.99},
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestRunIdentityWithoutFilters(t *testing.T) {
	products := fixtureProducts()
	res := Run(products, Query{Sort: SortRelevance}, 4)
	require.Equal(t, QueryOK, res.Outcome)
	require.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(res.Products))
}

func TestRunCategoryNarrowing(t *testing.T) {
	products := fixtureProducts()
	res := Run(products, Query{Category: "fresh-eggs"}, 4)
	require.Equal(t, QueryOK, res.Outcome)
	// "fresh" matches avocado and milk by name; "eggs" matches the egg slug.
	require.Equal(t, []string{"1", "3", "5"}, ids(res.Products))
}

func TestRunCategoryFallback(t *testing.T) {
	products := fixtureProducts()
	res := Run(products, Query{Category: "electronics"}, 3)
	require.Equal(t, QueryFallback, res.Outcome)
	require.Equal(t, []string{"1", "2", "3"}, ids(res.Products))
}

func TestRunSearchCaseInsensitiveSubstring(t *testing.T) {
	products := fixtureProducts()
	res := Run(products, Query{Search: "milk"}, 4)
	require.Equal(t, []string{"3"}, ids(res.Products))

	res = Run(products, Query{Search: "  MILK "}, 4)
	require.Equal(t, []string{"3"}, ids(res.Products))
}

func TestRunSearchAppliesAfterCategory(t *testing.T) {
	products := fixtureProducts()
	res := Run(products, Query{Category: "fresh-eggs", Search: "eggs"}, 4)
	require.Equal(t, []string{"5"}, ids(res.Products))
}

func TestRunSortPriceRoundTrip(t *testing.T) {
	products := fixtureProducts()
	asc := Run(products, Query{Sort: SortPriceAsc}, 4)
	desc := Run(products, Query{Sort: SortPriceDesc}, 4)

	reversed := make([]string, 0, len(asc.Products))
	for i := len(asc.Products) - 1; i >= 0; i-- {
		reversed = append(reversed, asc.Products[i].ID)
	}
	require.Equal(t, reversed, ids(desc.Products))
}

func TestRunSortByName(t *testing.T) {
	products := fixtureProducts()
	res := Run(products, Query{Sort: SortNameAsc}, 4)
	require.Equal(t, []string{"4", "1", "3", "5", "2"}, ids(res.Products))

	res = Run(products, Query{Sort: SortNameDesc}, 4)
	require.Equal(t, []string{"2", "5", "3", "1", "4"}, ids(res.Products))
}

func TestRunIdempotent(t *testing.T) {
	products := fixtureProducts()
	q := Query{Category: "fresh", Search: "a", Sort: SortPriceDesc}
	first := Run(products, q, 4)
	second := Run(products, q, 4)
	require.Equal(t, ids(first.Products), ids(second.Products))
	require.Equal(t, first.Outcome, second.Outcome)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	_ = Run(products, Query{Sort: SortPriceDesc}, 4)
	require.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(products))
}

func TestNormalizeSort(t *testing.T) {
	require.Equal(t, SortPriceAsc, NormalizeSort(" Price-ASC "))
	require.Equal(t, SortRelevance, NormalizeSort(""))
	require.Equal(t, SortRelevance, NormalizeSort("newest"))
}
