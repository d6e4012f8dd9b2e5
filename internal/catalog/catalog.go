package catalog

import (
	"sort"
	"strings"
)

// Product is one sellable catalog entry. Catalog data is read-only from the
// storefront's point of view; prices are normalised to minor units at load.
type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	PriceCents int64    `json:"price_cents"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	Images     []string `json:"images"`
	Label      string   `json:"label,omitempty"`
	Rank       int      `json:"rank,omitempty"`
}

// PrimaryImage returns the first image URL, or "" for a product without images.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// LookbookEntry is a single lookbook image, ordered by Index (1-based).
type LookbookEntry struct {
	Index int    `json:"index"`
	Image string `json:"image"`
	Alt   string `json:"alt,omitempty"`
}

// Catalog holds the full static product/lookbook description.
type Catalog struct {
	Currency string
	Products []Product
	Lookbook []LookbookEntry
}

// Product finds a product by ID.
func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ProductOrFirst resolves a product detail view: an unknown or empty id falls
// back to the first catalog entry, matching how the storefront always shows
// something rather than a broken page.
func (c *Catalog) ProductOrFirst(id string) (Product, bool) {
	if p, ok := c.Product(id); ok {
		return p, true
	}
	if len(c.Products) == 0 {
		return Product{}, false
	}
	return c.Products[0], true
}

// Featured returns products ordered for the featured section: ranked products
// first (ascending rank), then the rest in catalog order.
func (c *Catalog) Featured() []Product {
	out := make([]Product, len(c.Products))
	copy(out, c.Products)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		if ri > 0 && rj > 0 {
			return ri < rj
		}
		return ri > 0 && rj <= 0
	})
	return out
}

// Search filters products by a case-insensitive substring match over name,
// category, label, sizes and colors. An empty query returns everything.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Products
	}
	var out []Product
	for _, p := range c.Products {
		hay := strings.ToLower(strings.Join([]string{
			p.Name,
			p.Category,
			p.Label,
			strings.Join(p.Sizes, " "),
			strings.Join(p.Colors, " "),
		}, " "))
		if strings.Contains(hay, q) {
			out = append(out, p)
		}
	}
	return out
}

// ClampLookbookIndex forces a 1-based lookbook index into [1, total]. An
// empty lookbook clamps to 1 so the counter still renders.
func (c *Catalog) ClampLookbookIndex(i int) int {
	total := len(c.Lookbook)
	if total == 0 {
		return 1
	}
	if i < 1 {
		return 1
	}
	if i > total {
		return total
	}
	return i
}

// LookbookImage returns the entry for a (possibly out-of-range) 1-based index
// along with the clamped index and the total count.
func (c *Catalog) LookbookImage(i int) (LookbookEntry, int, int) {
	idx := c.ClampLookbookIndex(i)
	if len(c.Lookbook) == 0 {
		return LookbookEntry{Index: 1}, idx, 1
	}
	return c.Lookbook[idx-1], idx, len(c.Lookbook)
}
