package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quickdash/storefront/internal/common"
)

//go:embed seed.json
var seedData []byte

// ErrProductNotFound indicates no catalog entry matched the requested slug.
var ErrProductNotFound = errors.New("product not found")

// Provider supplies the immutable product list and category taxonomy.
type Provider interface {
	Products() []Product
	Categories() []Category
}

// StaticProvider serves the embedded seed catalog. The catalog never mutates
// after construction, so reads require no locking.
type StaticProvider struct {
	products   []Product
	categories []Category
	bySlug     map[string]int
}

// NewStaticProvider decodes the embedded seed catalog.
func NewStaticProvider() (*StaticProvider, error) {
	return newProviderFromJSON(seedData)
}

func newProviderFromJSON(data []byte) (*StaticProvider, error) {
	var seed struct {
		Products   []Product  `json:"products"`
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	if len(seed.Products) == 0 {
		return nil, errors.New("catalog seed has no products")
	}
	p := &StaticProvider{
		products:   seed.Products,
		categories: seed.Categories,
		bySlug:     make(map[string]int, len(seed.Products)),
	}
	for i, prod := range seed.Products {
		slug := strings.TrimSpace(prod.Slug)
		if slug == "" {
			return nil, fmt.Errorf("catalog seed: product %q has no slug", prod.Name)
		}
		if _, dup := p.bySlug[slug]; dup {
			return nil, fmt.Errorf("catalog seed: duplicate slug %q", slug)
		}
		p.bySlug[slug] = i
	}
	return p, nil
}

// Products returns the full catalog in seed order. Callers must not mutate
// the returned slice; the pipeline copies before sorting.
func (p *StaticProvider) Products() []Product { return p.products }

// Categories returns the category taxonomy.
func (p *StaticProvider) Categories() []Category { return p.categories }

// ProductBySlug resolves a single product by its stable slug.
func (p *StaticProvider) ProductBySlug(slug string) (Product, error) {
	idx, ok := p.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return Product{}, common.NewNotFound("product not found", ErrProductNotFound)
	}
	return p.products[idx], nil
}
