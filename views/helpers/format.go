package helpers

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// FormatPrice formats minor units as rand (e.g. 55000 -> "R550.00")
func FormatPrice(cents int64) string {
	return fmt.Sprintf("R%.2f", float64(cents)/100)
}

// FormatAmount formats minor units without the currency symbol (e.g. 55000 -> "550.00")
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

// FormatInt formats an integer as a string
func FormatInt(n int64) string {
	return fmt.Sprintf("%d", n)
}

// FormatDate formats a time.Time as "Jan 2, 2006"
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// ColorClass maps a color name onto the swatch CSS class used by the
// storefront; unknown colors fall back to grey.
func ColorClass(name string) string {
	c := strings.ToLower(name)
	switch {
	case strings.Contains(c, "black"):
		return "swatch-black"
	case strings.Contains(c, "white"):
		return "swatch-white"
	default:
		return "swatch-grey"
	}
}

// FuncMap exposes the helpers to the HTML templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money":      FormatPrice,
		"amount":     FormatAmount,
		"colorClass": ColorClass,
		"lower":      strings.ToLower,
		"add":        func(a, b int) int { return a + b },
	}
}
