package scraper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/radityabp/eventbudget/internal/models"
)

// shopeeState mirrors the slice of the Next.js bootstrap payload Shopee
// embeds in its product pages. Platform-authored structured data is the
// highest-trust source and is tried before any DOM selector.
type shopeeState struct {
	Props struct {
		PageProps struct {
			InitialData struct {
				ProductInfo struct {
					Name     string        `json:"name"`
					Price    float64       `json:"price"`
					PriceMin float64       `json:"priceMin"`
					Stock    int           `json:"stock"`
					Models   []shopeeModel `json:"models"`
				} `json:"productInfo"`
				ShopInfo struct {
					ShopName string `json:"shopName"`
				} `json:"shopInfo"`
			} `json:"initialData"`
		} `json:"pageProps"`
	} `json:"props"`
}

type shopeeModel struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

var (
	shopeeNameSelectors = []string{
		`h1[class*="product"]`,
		`h1[class*="name"]`,
		`[class*="product-briefing"] [class*="name"]`,
		`[class*="product-name"]`,
		`h1`,
		`.product-name`,
		`[data-testid="product-name"]`,
		`[class*="ProductName"]`,
	}
	shopeeShopSelectors = []string{
		`[class*="shop-name"]`,
		`a[href*="/shop/"]`,
		`[class*="shop"] [class*="name"]`,
		`.shop-name`,
		`[data-testid="shop-name"]`,
	}
	shopeePriceSelectors = []string{
		`[class*="price"]`,
		`[class*="Price"]`,
		`.price`,
		`[data-testid="price"]`,
	}
	shopeeStockSelectors = []string{
		`[class*="stock"]`,
		`[class*="Stock"]`,
		`.stock`,
		`[data-testid="stock"]`,
	}
	shopeeVariantSelectors = []string{
		`[class*="variant"]`,
		`[class*="model"]`,
		`.sku-variant-row`,
		`[data-testid="variant"]`,
		`.variant-option`,
		`button[class*="variant"]`,
	}
)

// ExtractShopee reads a rendered Shopee product page into a raw record.
// Strategy order per field: embedded Next.js state, generic JSON script
// payloads, DOM selector sweep with heuristic filtering, document title.
func ExtractShopee(d *RenderedDocument) *RawProduct {
	raw := &RawProduct{}

	var state shopeeState
	hasState := false
	if payload, ok := d.NextData(); ok {
		if err := json.Unmarshal([]byte(payload), &state); err == nil {
			hasState = true
		}
	}
	info := state.Props.PageProps.InitialData.ProductInfo

	if hasState {
		raw.Name = strings.TrimSpace(info.Name)
		raw.ShopName = strings.TrimSpace(state.Props.PageProps.InitialData.ShopInfo.ShopName)
		if info.Price > 0 {
			raw.Price = info.Price
		} else if info.PriceMin > 0 {
			raw.Price = info.PriceMin
		}
		if info.Stock > 0 {
			raw.Stock = info.Stock
		}
	}

	if raw.Name == "" || raw.Price == 0 {
		name, price := shopeeFromJSONScripts(d)
		if raw.Name == "" {
			raw.Name = name
		}
		if raw.Price == 0 {
			raw.Price = price
		}
	}

	if raw.Name == "" {
		raw.Name = sweepText(d, shopeeNameSelectors, usableShopeeName)
	}
	if raw.Name == "" {
		raw.Name = nameFromTitle(d.Title(), "Shopee")
	}

	if raw.ShopName == "" {
		raw.ShopName = sweepText(d, shopeeShopSelectors, func(text string) bool {
			return len(text) > 2 && !strings.Contains(text, "Shopee")
		})
	}

	if raw.Price == 0 {
		raw.Price = sweepShopeePrice(d)
	}

	if raw.Stock == 0 {
		for _, selector := range shopeeStockSelectors {
			var found int
			d.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
				if v, ok := parseCount(s.Text()); ok {
					found = v
					return false
				}
				return true
			})
			if found > 0 {
				raw.Stock = found
				break
			}
		}
	}

	raw.Variants = extractShopeeVariants(d, info.Models)
	backfillVariants(raw)

	return raw
}

// shopeeFromJSONScripts sweeps loose application/json script tags for
// product fields keyed either under productInfo or at the top level.
func shopeeFromJSONScripts(d *RenderedDocument) (string, float64) {
	var name string
	var price float64

	for _, payload := range d.JSONScripts() {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(payload), &data); err != nil {
			continue
		}

		fields := data
		if nested, ok := data["productInfo"].(map[string]interface{}); ok {
			fields = nested
		}

		if name == "" {
			if v, ok := fields["name"].(string); ok && strings.TrimSpace(v) != "" {
				name = strings.TrimSpace(v)
			}
		}
		if price == 0 {
			if v := asPrice(fields["price"]); v > 0 {
				price = v
			}
		}
		if name != "" && price > 0 {
			break
		}
	}

	return name, price
}

// asPrice tolerates the payload rendering prices as numbers or strings.
func asPrice(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}

func usableShopeeName(text string) bool {
	return len(text) > 5 &&
		!strings.Contains(text, "Shopee") &&
		!strings.Contains(text, "Home")
}

// sweepShopeePrice scans price-ish elements and keeps the first candidate
// that strips to a plausible amount. The length guard skips fragments like
// bare percentages before they parse as tiny prices.
func sweepShopeePrice(d *RenderedDocument) float64 {
	for _, selector := range shopeePriceSelectors {
		var found float64
		d.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
			if len(digitsOnly(s.Text())) <= 3 {
				return true
			}
			if v, ok := parseAmount(s.Text()); ok {
				found = v
				return false
			}
			return true
		})
		if found > 0 {
			return found
		}
	}
	return 0
}

// extractShopeeVariants prefers the structured model list; otherwise it
// walks the DOM selector families. Shopee does not expose per-variant
// stock in the DOM, so those variants carry the default.
func extractShopeeVariants(d *RenderedDocument, tierModels []shopeeModel) []RawVariant {
	var variants []RawVariant

	for _, model := range tierModels {
		if model.Name == "" || model.Price <= 0 {
			continue
		}
		stock := model.Stock
		if stock <= 0 {
			stock = models.DefaultStock
		}
		variants = append(variants, RawVariant{Name: model.Name, Price: model.Price, Stock: stock})
	}
	if len(variants) > 0 {
		return variants
	}

	for _, selector := range shopeeVariantSelectors {
		sel := d.Find(selector)
		if sel.Length() == 0 {
			continue
		}

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
			variants = append(variants, variant)
		})
		if len(variants) > 0 {
			break
		}
	}

	return variants
}
