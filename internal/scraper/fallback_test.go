package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticOffer_KeywordMatch(t *testing.T) {
	t.Run("ugreen cable resolves deterministically", func(t *testing.T) {
		link := "https://www.tokopedia.com/store/ugreen-kabel-type-c"

		offer := syntheticOffer(PlatformTokopedia, link)

		assert.True(t, offer.Success)
		assert.True(t, offer.Synthetic)
		assert.Contains(t, offer.Name, "UGREEN")

		require.Len(t, offer.Variants, 5)
		assert.Equal(t, "25057 1M", offer.Variants[0].Name)
		assert.Equal(t, float64(54600), offer.Variants[0].Price)
		assert.Equal(t, 61, offer.Variants[0].Stock)
		assert.Equal(t, "50149 50CM", offer.Variants[3].Name)
		assert.Equal(t, float64(49600), offer.Variants[3].Price)

		assert.Equal(t, "variant-0", offer.SelectedVariantID)
		assert.Equal(t, float64(54600), offer.Price)
		assert.Equal(t, 61, offer.Stock)
	})

	t.Run("brand without alias does not match", func(t *testing.T) {
		// "ugreen" alone is ambiguous; the cable entry needs a cable keyword too
		sample := matchSample(tokopediaSamples, "https://www.tokopedia.com/store/ugreen-powerbank")
		assert.Nil(t, sample)
	})

	t.Run("keyword match on shopee catalog", func(t *testing.T) {
		offer := syntheticOffer(PlatformShopee, "https://shopee.co.id/tenda-pramuka-4x4-i.123.456")

		assert.True(t, offer.Synthetic)
		assert.Contains(t, offer.Name, "Tenda")
	})
}

func TestSyntheticOffer_RandomPick(t *testing.T) {
	names := make(map[string]bool)
	for _, s := range shopeeSamples {
		names[s.name] = true
	}

	for i := 0; i < 20; i++ {
		offer := syntheticOffer(PlatformShopee, "https://shopee.co.id/xyz-i.1.2")

		assert.True(t, offer.Success)
		assert.True(t, offer.Synthetic)
		assert.True(t, names[offer.Name], "offer %q not in catalog", offer.Name)
		assert.Greater(t, offer.Price, float64(0))
		assert.Greater(t, offer.Stock, 0)
		require.NotEmpty(t, offer.Variants)
		assert.Equal(t, "variant-0", offer.SelectedVariantID)
	}
}

func TestSampleProductOffer_OptionPricing(t *testing.T) {
	s := &sampleProduct{
		name:      "Banner Vinyl Custom Print",
		basePrice: 80000,
		options:   []string{"2x1 Meter", "3x1 Meter", "4x2 Meter"},
	}

	offer := s.offer()

	require.Len(t, offer.Variants, 3)
	assert.Equal(t, float64(80000), offer.Variants[0].Price)
	assert.Equal(t, float64(90000), offer.Variants[1].Price)
	assert.Equal(t, float64(100000), offer.Variants[2].Price)

	for _, v := range offer.Variants {
		assert.GreaterOrEqual(t, v.Stock, 10)
		assert.LessOrEqual(t, v.Stock, 209)
	}
}

func TestSampleCatalogs_WellFormed(t *testing.T) {
	// every entry needs options or variants, or offer() has nothing to build
	for _, samples := range [][]sampleProduct{shopeeSamples, tokopediaSamples} {
		for _, s := range samples {
			assert.True(t, len(s.options) > 0 || len(s.variants) > 0,
				"sample %q has neither options nor variants", s.name)
			assert.NotEmpty(t, s.name)
			if len(s.variants) == 0 {
				assert.Greater(t, s.basePrice, float64(0),
					"sample %q prices options off basePrice", s.name)
			}
		}
	}
}

func TestMatchSample_CaseInsensitiveViaCaller(t *testing.T) {
	// syntheticOffer lowercases the link before matching
	offer := syntheticOffer(PlatformTokopedia, "https://www.tokopedia.com/UGREEN-KABEL-DATA")

	assert.True(t, strings.HasPrefix(offer.Name, "UGREEN"))
}
