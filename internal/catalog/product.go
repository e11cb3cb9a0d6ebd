package catalog

// Product is an immutable catalog entry supplied by the provider.
type Product struct {
	ID       string   `json:"id"`
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Unit     string   `json:"unit"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// VisualKind discriminates how a category is rendered.
type VisualKind string

const (
	VisualIcon  VisualKind = "icon"
	VisualImage VisualKind = "image"
	VisualNone  VisualKind = "none"
)

// Visual is a tagged variant: a category shows an icon, an image, or nothing.
type Visual struct {
	Kind     VisualKind `json:"kind"`
	IconRef  string     `json:"iconRef,omitempty"`
	ImageURL string     `json:"imageUrl,omitempty"`
}

// IconVisual references a named icon in the presentation layer's icon set.
func IconVisual(ref string) Visual { return Visual{Kind: VisualIcon, IconRef: ref} }

// ImageVisual points at a hosted image.
func ImageVisual(url string) Visual { return Visual{Kind: VisualImage, ImageURL: url} }

// NoVisual renders no adornment.
func NoVisual() Visual { return Visual{Kind: VisualNone} }

// Category is a taxonomy entry with its display visual.
type Category struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Visual Visual `json:"visual"`
}
