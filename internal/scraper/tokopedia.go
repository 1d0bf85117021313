package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/radityabp/eventbudget/internal/models"
)

// Selector ladders for Tokopedia product pages, ordered testid-first. The
// markup changes often; the generic tail keeps extraction limping along
// when the component-scoped selectors rot.
var (
	tokopediaNameSelectors = []string{
		`h1[data-testid="lblPDPDetailProductName"]`,
		`[data-testid="pdpProductName"]`,
		`h1.pdp-product-name`,
		`h1[class*="product-name"]`,
		`h1`,
		`.product-name`,
		`[class*="ProductName"]`,
	}
	tokopediaShopSelectors = []string{
		`[data-testid="llbPDPFooterShopName"]`,
		`a[data-testid="shopName"]`,
		`a[href*="/shop/"]`,
		`.shop-name`,
		`[class*="ShopName"]`,
		`[class*="shop-name"]`,
	}
	tokopediaPriceSelectors = []string{
		`[data-testid="lblPDPDetailProductPrice"]`,
		`.price`,
		`[class*="price"]`,
		`[class*="Price"]`,
		`.product-price`,
	}
	tokopediaStockSelectors = []string{
		`[data-testid="lblPDPDetailProductStock"]`,
		`.stock`,
		`[class*="stock"]`,
		`[class*="Stock"]`,
	}
	tokopediaVariantSelectors = []string{
		`[data-testid="pdpVariantOption"]`,
		`.variant-option`,
		`button[data-variant]`,
		`.product-variant`,
		`[class*="variant"]`,
		`.sku-variant-row`,
	}
)

// ExtractTokopedia reads a rendered Tokopedia product page into a raw
// record. Every field is extracted independently; a miss leaves the zero
// value for the normalizer to default.
func ExtractTokopedia(d *RenderedDocument) *RawProduct {
	raw := &RawProduct{}

	raw.Name = firstText(d, tokopediaNameSelectors)
	if raw.Name == "" {
		raw.Name = nameFromTitle(d.Title(), "Tokopedia")
	}

	raw.ShopName = firstText(d, tokopediaShopSelectors)

	for _, selector := range tokopediaPriceSelectors {
		if v, ok := parseAmount(d.Find(selector).First().Text()); ok {
			raw.Price = v
			break
		}
	}

	for _, selector := range tokopediaStockSelectors {
		if v, ok := parseCount(d.Find(selector).First().Text()); ok {
			raw.Stock = v
			break
		}
	}

	raw.Variants = extractTokopediaVariants(d)
	backfillVariants(raw)

	return raw
}

// extractTokopediaVariants walks the variant selector families and keeps
// the first family that matches anything. Tokopedia nests price and stock
// on the option elements as data attributes.
func extractTokopediaVariants(d *RenderedDocument) []RawVariant {
	for _, selector := range tokopediaVariantSelectors {
		sel := d.Find(selector)
		if sel.Length() == 0 {
			continue
		}

		var variants []RawVariant
		sel.Each(func(i int, s *goquery.Selection) {
			name := strings.TrimSpace(s.Text())
			if name == "" {
				name, _ = s.Attr("data-variant-name")
			}
			if name == "" || name == models.DefaultVariantName {
				return
			}

			variant := RawVariant{Name: name, Stock: models.DefaultStock}
			if attr, ok := s.Attr("data-price"); ok {
				if v, err := strconv.ParseFloat(attr, 64); err == nil && v > 0 {
					variant.Price = v
				}
			}
			if attr, ok := s.Attr("data-stock"); ok {
				if v, err := strconv.Atoi(attr); err == nil && v > 0 {
					variant.Stock = v
				}
			}
			variants = append(variants, variant)
		})

		// One family matched; later families would describe the same
		// options in a different widget, so never merge across them.
		return variants
	}
	return nil
}

// nameFromTitle falls back to the document title, dropping the platform
// brand suffix ("Product Name | Tokopedia").
func nameFromTitle(title, brand string) string {
	if title == "" {
		return ""
	}
	head := strings.TrimSpace(strings.SplitN(title, "|", 2)[0])
	if len(head) <= 5 || strings.Contains(head, brand) {
		return ""
	}
	return head
}
