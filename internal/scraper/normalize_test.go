package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radityabp/eventbudget/internal/models"
)

func TestBackfillVariants(t *testing.T) {
	t.Run("empty list gets the Default placeholder", func(t *testing.T) {
		raw := &RawProduct{}
		backfillVariants(raw)

		require.Len(t, raw.Variants, 1)
		assert.Equal(t, models.DefaultVariantName, raw.Variants[0].Name)
		assert.Equal(t, float64(0), raw.Variants[0].Price)
		assert.Equal(t, models.DefaultStock, raw.Variants[0].Stock)
	})

	t.Run("lone Default inherits page price and stock", func(t *testing.T) {
		raw := &RawProduct{
			Price:    54600,
			Stock:    61,
			Variants: []RawVariant{{Name: models.DefaultVariantName}},
		}
		backfillVariants(raw)

		require.Len(t, raw.Variants, 1)
		assert.Equal(t, models.DefaultVariantName, raw.Variants[0].Name)
		assert.Equal(t, float64(54600), raw.Variants[0].Price)
		assert.Equal(t, 61, raw.Variants[0].Stock)
	})

	t.Run("real variants are left alone", func(t *testing.T) {
		raw := &RawProduct{
			Price: 54600,
			Variants: []RawVariant{
				{Name: "25057 1M", Price: 54600, Stock: 61},
				{Name: "50123 3A 1M", Price: 59600, Stock: 45},
			},
		}
		backfillVariants(raw)

		require.Len(t, raw.Variants, 2)
		assert.Equal(t, "25057 1M", raw.Variants[0].Name)
		assert.Equal(t, float64(59600), raw.Variants[1].Price)
	})

	t.Run("idempotent", func(t *testing.T) {
		raw := &RawProduct{Price: 80000, Stock: 5}
		backfillVariants(raw)
		backfillVariants(raw)

		require.Len(t, raw.Variants, 1)
		assert.Equal(t, float64(80000), raw.Variants[0].Price)
		assert.Equal(t, 5, raw.Variants[0].Stock)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("variant ids are positional and the first is selected", func(t *testing.T) {
		raw := &RawProduct{
			Name:     "UGREEN Kabel Data Type C",
			ShopName: "UGREEN Official Store",
			Price:    54600,
			Stock:    61,
			Variants: []RawVariant{
				{Name: "25057 1M", Price: 54600, Stock: 61},
				{Name: "50123 3A 1M", Price: 59600, Stock: 45},
				{Name: "50125 3A 2M", Price: 69600, Stock: 38},
			},
		}

		offer := Normalize(PlatformTokopedia, raw)

		assert.True(t, offer.Success)
		assert.Equal(t, "UGREEN Kabel Data Type C", offer.Name)
		require.Len(t, offer.Variants, 3)
		assert.Equal(t, "variant-0", offer.Variants[0].ID)
		assert.Equal(t, "variant-1", offer.Variants[1].ID)
		assert.Equal(t, "variant-2", offer.Variants[2].ID)
		assert.Equal(t, "variant-0", offer.SelectedVariantID)
	})

	t.Run("Default placeholder is dropped from output", func(t *testing.T) {
		raw := &RawProduct{
			Name:     "Banner Vinyl Custom Print",
			Price:    80000,
			Variants: []RawVariant{{Name: models.DefaultVariantName, Price: 80000, Stock: 100}},
		}

		offer := Normalize(PlatformShopee, raw)

		assert.Empty(t, offer.Variants)
		assert.Empty(t, offer.SelectedVariantID)
		// the placeholder's values survive as the offer scalars
		assert.Equal(t, float64(80000), offer.Price)
		assert.Equal(t, 100, offer.Stock)
	})

	t.Run("missing name and shop get sentinels", func(t *testing.T) {
		offer := Normalize(PlatformShopee, &RawProduct{})

		assert.Equal(t, models.NameNotFound, offer.Name)
		assert.Equal(t, models.UnknownShop, offer.ShopName)
		assert.True(t, offer.Success)
	})

	t.Run("price and stock fall back to the first variant", func(t *testing.T) {
		raw := &RawProduct{
			Name: "Kursi Plastik Lipat",
			Variants: []RawVariant{
				{Name: "Set 50 Pcs", Price: 50000, Stock: 20},
				{Name: "Set 100 Pcs", Price: 95000, Stock: 8},
			},
		}

		offer := Normalize(PlatformShopee, raw)

		assert.Equal(t, float64(50000), offer.Price)
		assert.Equal(t, 20, offer.Stock)
	})

	t.Run("pure function of its input", func(t *testing.T) {
		raw := &RawProduct{
			Name:     "Meja Folding Portable",
			Price:    200000,
			Stock:    30,
			Variants: []RawVariant{{Name: "Set 20 Pcs", Price: 200000, Stock: 30}},
		}

		first := Normalize(PlatformTokopedia, raw)
		second := Normalize(PlatformTokopedia, raw)

		assert.Equal(t, first, second)
	})
}
