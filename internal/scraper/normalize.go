package scraper

import (
	"fmt"

	"github.com/radityabp/eventbudget/internal/models"
)

// backfillVariants finishes a raw record's variant list after extraction.
// A page with no extractable variants gets the single synthetic Default
// variant, and a lone Default variant inherits the page-level price and
// stock so a single-offering product is not reported as a zero-price
// placeholder.
func backfillVariants(raw *RawProduct) {
	if len(raw.Variants) == 0 {
		raw.Variants = []RawVariant{{
			Name:  models.DefaultVariantName,
			Price: 0,
			Stock: models.DefaultStock,
		}}
	}

	if len(raw.Variants) == 1 && raw.Variants[0].Name == models.DefaultVariantName {
		stock := raw.Stock
		if stock <= 0 {
			stock = models.DefaultStock
		}
		raw.Variants[0] = RawVariant{
			Name:  models.DefaultVariantName,
			Price: raw.Price,
			Stock: stock,
		}
	}
}

// Normalize maps a raw platform record onto the shared offer schema. It is
// a pure function of its input: variant ids are assigned positionally
// ("variant-<index>", insertion order preserved) and the first variant is
// the selected default. When the record holds only the synthetic Default
// placeholder the variants field is dropped entirely, so callers can tell
// "no variants" apart from "one real variant"; its backfilled price and
// stock survive as the offer's scalars.
func Normalize(platform Platform, raw *RawProduct) *models.ProductOffer {
	offer := &models.ProductOffer{
		Name:     raw.Name,
		ShopName: raw.ShopName,
		Success:  true,
	}
	if offer.Name == "" {
		offer.Name = models.NameNotFound
	}
	if offer.ShopName == "" {
		offer.ShopName = models.UnknownShop
	}

	placeholderOnly := len(raw.Variants) == 1 && raw.Variants[0].Name == models.DefaultVariantName

	if !placeholderOnly {
		for i, v := range raw.Variants {
			offer.Variants = append(offer.Variants, models.Variant{
				ID:    fmt.Sprintf("variant-%d", i),
				Name:  v.Name,
				Price: v.Price,
				Stock: v.Stock,
			})
		}
		if len(offer.Variants) > 0 {
			offer.SelectedVariantID = offer.Variants[0].ID
		}
	}

	offer.Price = raw.Price
	if offer.Price <= 0 && len(raw.Variants) > 0 {
		offer.Price = raw.Variants[0].Price
	}
	if offer.Price < 0 {
		offer.Price = 0
	}

	offer.Stock = raw.Stock
	if offer.Stock <= 0 && len(raw.Variants) > 0 {
		offer.Stock = raw.Variants[0].Stock
	}
	if offer.Stock <= 0 {
		offer.Stock = models.DefaultStock
	}

	return offer
}
