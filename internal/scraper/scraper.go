package scraper

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/radityabp/eventbudget/internal/browser"
)

// Platform identifies one of the supported marketplaces.
type Platform string

const (
	PlatformShopee    Platform = "shopee"
	PlatformTokopedia Platform = "tokopedia"
)

// ErrUnsupportedPlatform is returned for links that belong to neither
// marketplace. This is the only error the fetch pipeline surfaces to
// callers; everything downstream resolves to an offer instead.
var ErrUnsupportedPlatform = errors.New("unsupported platform: only Shopee and Tokopedia links are supported")

// DetectPlatform classifies a product link by its domain.
func DetectPlatform(link string) (Platform, error) {
	switch {
	case strings.Contains(link, "shopee.co.id"), strings.Contains(link, "shopee.com"):
		return PlatformShopee, nil
	case strings.Contains(link, "tokopedia.com"):
		return PlatformTokopedia, nil
	}
	return "", ErrUnsupportedPlatform
}

// Renderer loads one URL in a browser and returns the rendered HTML.
type Renderer interface {
	Render(ctx context.Context, url string, opts browser.RenderOptions) (string, error)
}

// renderOptions returns the per-platform page-load tuning. Shopee defers
// most content to client-side rendering and needs a settle delay after
// load before anything useful is in the DOM.
func renderOptions(platform Platform) browser.RenderOptions {
	switch platform {
	case PlatformShopee:
		return browser.RenderOptions{
			WaitSelector: `h1, [class*="product"], [class*="name"]`,
			WaitTimeout:  10 * time.Second,
			SettleDelay:  5 * time.Second,
		}
	default:
		return browser.RenderOptions{
			WaitSelector: `h1[data-testid="lblPDPDetailProductName"], h1, [class*="product"]`,
			WaitTimeout:  5 * time.Second,
		}
	}
}

// RawVariant is one variant as read off the page, before normalization.
type RawVariant struct {
	Name  string
	Price float64
	Stock int
}

// RawProduct is the platform-specific extraction result. Fields that no
// strategy matched hold their zero value; the normalizer fills defaults.
type RawProduct struct {
	Name     string
	ShopName string
	Price    float64
	Stock    int
	Variants []RawVariant
}
