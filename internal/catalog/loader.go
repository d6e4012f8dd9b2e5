package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultCurrency = "zar"
	fetchTimeout    = 10 * time.Second
)

var (
	defaultSizes  = []string{"S", "M", "L", "XL"}
	defaultColors = []string{"Black", "White"}
)

// Loader reads the static catalog resource from a local file or an HTTP URL.
type Loader struct {
	source string
	client *http.Client
}

func NewLoader(source string) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// rawProduct is the wire shape of a catalog product. Fields are loose on
// purpose: ids may be numbers, prices are major units, most fields optional.
type rawProduct struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    json.Number `json:"price"`
	Sizes    []string    `json:"sizes"`
	Colors   []string    `json:"colors"`
	Images   []string    `json:"images"`
	Label    string      `json:"label"`
	Rank     int         `json:"rank"`
}

type rawLookbook struct {
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

type rawCatalog struct {
	Currency string        `json:"currency"`
	Products []rawProduct  `json:"products"`
	Lookbook []rawLookbook `json:"lookbook"`
}

// Load fetches and normalises the catalog. The resource is either a bare JSON
// array of products or a {currency, products, lookbook} object.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog from %s: %w", l.source, err)
	}

	raw, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	cat := normalize(raw)
	slog.Info("catalog loaded",
		"source", l.source,
		"products", len(cat.Products),
		"lookbook", len(cat.Lookbook),
		"currency", cat.Currency,
	)
	return cat, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(l.source)
}

func decode(data []byte) (rawCatalog, error) {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var raw rawCatalog
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &raw.Products); err != nil {
			return rawCatalog{}, err
		}
		return raw, nil
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return rawCatalog{}, err
	}
	return raw, nil
}

func normalize(raw rawCatalog) *Catalog {
	cat := &Catalog{
		Currency: strings.ToLower(raw.Currency),
		Products: make([]Product, 0, len(raw.Products)),
		Lookbook: make([]LookbookEntry, 0, len(raw.Lookbook)),
	}
	if cat.Currency == "" {
		cat.Currency = defaultCurrency
	}

	for _, rp := range raw.Products {
		p := Product{
			ID:         rp.ID.String(),
			Name:       rp.Name,
			Category:   rp.Category,
			PriceCents: toCents(rp.Price),
			Sizes:      rp.Sizes,
			Colors:     rp.Colors,
			Images:     rp.Images,
			Label:      rp.Label,
			Rank:       rp.Rank,
		}
		if p.Name == "" {
			p.Name = "Item"
		}
		if len(p.Sizes) == 0 {
			p.Sizes = append([]string(nil), defaultSizes...)
		}
		if len(p.Colors) == 0 {
			p.Colors = append([]string(nil), defaultColors...)
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		cat.Products = append(cat.Products, p)
	}

	for i, rl := range raw.Lookbook {
		cat.Lookbook = append(cat.Lookbook, LookbookEntry{
			Index: i + 1,
			Image: rl.Image,
			Alt:   rl.Alt,
		})
	}

	return cat
}

// toCents converts a major-unit catalog price to minor units, rounding to the
// nearest cent. Invalid or negative prices normalise to zero.
func toCents(n json.Number) int64 {
	if n.String() == "" {
		return 0
	}
	f, err := n.Float64()
	if err != nil || f < 0 {
		return 0
	}
	return int64(math.Round(f * 100))
}
