package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	c := New()
	_, err := c.Add(ItemParams{ProductID: "1", Name: "Tee", PriceCents: 55000, Size: "M", Color: "Black", Quantity: 2, Image: "/img/tee.jpg"})
	require.NoError(t, err)
	_, err = c.Add(ItemParams{ProductID: "2", Name: "Hoodie", PriceCents: 110000, Size: "L", Color: "Grey", Quantity: 1})
	require.NoError(t, err)

	payload, err := c.Encode()
	require.NoError(t, err)

	decoded := DecodeSnapshot(payload)
	assert.Equal(t, c.Items(), decoded.Items())

	total, count := decoded.Totals()
	assert.Equal(t, int64(220000), total)
	assert.Equal(t, int64(3), count)
}

func TestEncodeEmptyCartIsArray(t *testing.T) {
	payload, err := New().Encode()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(payload))
}

func TestDecodeSnapshotTolerance(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"nil payload", ""},
		{"empty array", "[]"},
		{"truncated json", `[{"product_id":"1","si`},
		{"not an array", `{"product_id":"1"}`},
		{"wrong types", `[{"product_id":1,"quantity":"x"}]`},
		{"plain garbage", "not json at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DecodeSnapshot([]byte(tt.payload))
			require.NotNil(t, c)
			assert.True(t, c.IsEmpty())
		})
	}
}

func TestDecodeSnapshotSanitisesItems(t *testing.T) {
	payload := `[
		{"key":"","product_id":"1","name":"Tee","price_cents":55000,"size":"M","color":"Black","quantity":0},
		{"product_id":"","name":"ghost","price_cents":100,"size":"M","color":"Black","quantity":1},
		{"product_id":"2","name":"no size","price_cents":100,"color":"Black","quantity":1},
		{"product_id":"3","name":"no color","price_cents":100,"size":"M","quantity":1}
	]`

	c := DecodeSnapshot([]byte(payload))
	require.Equal(t, 1, c.Len())

	item := c.Items()[0]
	assert.Equal(t, "1-M-Black", item.Key)
	assert.Equal(t, int64(1), item.Quantity)
}
