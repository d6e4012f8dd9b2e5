// Generates a fake catalog file for local development.
//
// Usage: go run ./scripts/seed-catalog [path]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/brianvoe/gofakeit/v7"
)

const numProducts = 12

type product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Sizes    []string `json:"sizes"`
	Colors   []string `json:"colors"`
	Images   []string `json:"images"`
	Label    string   `json:"label,omitempty"`
	Rank     int      `json:"rank,omitempty"`
}

type lookbookEntry struct {
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

type catalogFile struct {
	Currency string          `json:"currency"`
	Products []product       `json:"products"`
	Lookbook []lookbookEntry `json:"lookbook"`
}

var (
	categories = []string{"tees", "hoodies", "pants", "headwear", "jackets"}
	colorSets  = [][]string{
		{"Black", "White"},
		{"Black", "Grey"},
		{"Black"},
		{"White", "Grey"},
	}
	labels = []string{"", "", "New Drop", "Limited", "Restock"}
)

func main() {
	path := "./public/assets/products.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	out := catalogFile{Currency: "zar"}

	for i := 1; i <= numProducts; i++ {
		category := categories[gofakeit.Number(0, len(categories)-1)]
		name := fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounConcrete())

		p := product{
			ID:       fmt.Sprintf("%d", i),
			Name:     name,
			Category: category,
			Price:    float64(gofakeit.Number(250, 1500)),
			Sizes:    []string{"S", "M", "L", "XL"},
			Colors:   colorSets[gofakeit.Number(0, len(colorSets)-1)],
			Images:   []string{fmt.Sprintf("/public/assets/img/product-%d.jpg", i)},
			Label:    labels[gofakeit.Number(0, len(labels)-1)],
		}
		if i <= 4 {
			p.Rank = i
		}
		out.Products = append(out.Products, p)
	}

	for i := 1; i <= 6; i++ {
		out.Lookbook = append(out.Lookbook, lookbookEntry{
			Image: fmt.Sprintf("/public/assets/img/look-%d.jpg", i),
			Alt:   fmt.Sprintf("Look %d", i),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wrote %d products and %d lookbook entries to %s\n",
		len(out.Products), len(out.Lookbook), path)
}
