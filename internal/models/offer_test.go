package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductOfferJSON(t *testing.T) {
	t.Run("variants omitted when absent", func(t *testing.T) {
		offer := &ProductOffer{
			Name:    "Banner Vinyl Custom Print",
			Price:   80000,
			Stock:   100,
			Success: true,
		}

		data, err := json.Marshal(offer)
		require.NoError(t, err)

		assert.NotContains(t, string(data), "variants")
		assert.NotContains(t, string(data), "selectedVariantId")
	})

	t.Run("synthetic flag never serializes", func(t *testing.T) {
		offer := &ProductOffer{Name: "X", Success: true, Synthetic: true}

		data, err := json.Marshal(offer)
		require.NoError(t, err)

		var fields map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &fields))
		for key := range fields {
			assert.NotContains(t, key, "ynthetic")
		}
	})
}

func TestFirstVariant(t *testing.T) {
	t.Run("nil when empty", func(t *testing.T) {
		offer := &ProductOffer{}
		assert.Nil(t, offer.FirstVariant())
	})

	t.Run("returns the selected default", func(t *testing.T) {
		offer := &ProductOffer{
			Variants: []Variant{
				{ID: "variant-0", Name: "25057 1M", Price: 54600, Stock: 61},
				{ID: "variant-1", Name: "50123 3A 1M", Price: 59600, Stock: 45},
			},
			SelectedVariantID: "variant-0",
		}

		v := offer.FirstVariant()
		require.NotNil(t, v)
		assert.Equal(t, "variant-0", v.ID)
		assert.Equal(t, float64(54600), v.Price)
	})
}
