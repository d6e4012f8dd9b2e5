package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadObjectForm(t *testing.T) {
	path := writeCatalogFile(t, `{
		"currency": "ZAR",
		"products": [
			{"id": 1, "name": "Tee", "category": "tees", "price": 550, "sizes": ["S","M"], "colors": ["Black"], "images": ["/img/tee.jpg"], "label": "New Drop", "rank": 1}
		],
		"lookbook": [
			{"image": "/img/look-1.jpg", "alt": "Look 1"},
			{"image": "/img/look-2.jpg"}
		]
	}`)

	cat, err := NewLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "zar", cat.Currency)
	require.Len(t, cat.Products, 1)

	p := cat.Products[0]
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, int64(55000), p.PriceCents)
	assert.Equal(t, []string{"S", "M"}, p.Sizes)

	require.Len(t, cat.Lookbook, 2)
	assert.Equal(t, 1, cat.Lookbook[0].Index)
	assert.Equal(t, 2, cat.Lookbook[1].Index)
}

func TestLoadBareArrayForm(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"id": "tee", "name": "Tee", "price": 550},
		{"id": "cap", "name": "Cap", "price": 350}
	]`)

	cat, err := NewLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "zar", cat.Currency)
	assert.Len(t, cat.Products, 2)
	assert.Empty(t, cat.Lookbook)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeCatalogFile(t, `[{"id": 7, "price": 100}]`)

	cat, err := NewLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Products, 1)

	p := cat.Products[0]
	assert.Equal(t, "Item", p.Name)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, p.Sizes)
	assert.Equal(t, []string{"Black", "White"}, p.Colors)
	assert.NotNil(t, p.Images)
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Tee", "price": 550}]`))
	}))
	defer srv.Close()

	cat, err := NewLoader(srv.URL).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Products, 1)
}

func TestLoadHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.URL).Load(context.Background())
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader("/does/not/exist.json").Load(context.Background())
	assert.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"products": [`)
	_, err := NewLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"550", 55000},
		{"549.99", 54999},
		{"0.005", 1},
		{"0", 0},
		{"-5", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toCents(json.Number(tt.in)), "price %q", tt.in)
	}
}
