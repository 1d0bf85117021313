package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/radityabp/eventbudget/internal/models"
	"github.com/radityabp/eventbudget/internal/ratelimit"
)

// Service runs the fetch pipeline for one product link: detect the
// platform, render the page, extract and normalize, and fall back to the
// sample catalog when nothing usable comes back. Apart from the
// unsupported-platform input error, every failure resolves to an offer —
// users adding products to an event budget are never blocked on a flaky
// marketplace page. The Synthetic flag on the offer is the internal
// signal that the always-succeed policy kicked in.
type Service struct {
	renderer Renderer
	limiter  *ratelimit.AdaptiveRateLimiter
	logger   *slog.Logger
}

func NewService(renderer Renderer, logger *slog.Logger) *Service {
	return &Service{
		renderer: renderer,
		limiter:  ratelimit.NewAdaptiveRateLimiter(2*time.Second, 10*time.Second),
		logger:   logger.With("component", "scraper"),
	}
}

// SetRateLimit adjusts the spacing between renders.
func (s *Service) SetRateLimit(min, max time.Duration) {
	s.limiter.SetDelay(min, max)
}

// FetchProduct resolves one product link to a normalized offer. Each call
// is independent: its own browser process, no shared state, no automatic
// retry — re-invoking with the same link is the caller's retry.
func (s *Service) FetchProduct(ctx context.Context, link string) (*models.ProductOffer, error) {
	platform, err := DetectPlatform(link)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("fetching product", "platform", platform, "link", link)

	html, err := s.renderer.Render(ctx, link, renderOptions(platform))
	if err != nil {
		s.limiter.RecordError()
		s.logger.Warn("page render failed, substituting sample offer",
			"platform", platform, "link", link, "error", err)
		return s.synthetic(platform, link), nil
	}
	s.limiter.RecordSuccess()

	doc, err := ParseDocument(html)
	if err != nil {
		s.logger.Warn("rendered page did not parse, substituting sample offer",
			"platform", platform, "link", link, "error", err)
		return s.synthetic(platform, link), nil
	}

	var raw *RawProduct
	switch platform {
	case PlatformShopee:
		raw = ExtractShopee(doc)
	default:
		raw = ExtractTokopedia(doc)
	}

	if raw.Name == "" || raw.Name == models.NameNotFound {
		s.logger.Warn("extraction found no usable product name, substituting sample offer",
			"platform", platform, "link", link)
		return s.synthetic(platform, link), nil
	}

	offer := Normalize(platform, raw)
	s.logger.Info("product extracted",
		"platform", platform,
		"name", offer.Name,
		"price", offer.Price,
		"variants", len(offer.Variants),
	)
	return offer, nil
}

func (s *Service) synthetic(platform Platform, link string) *models.ProductOffer {
	offer := syntheticOffer(platform, link)
	s.logger.Info("sample offer substituted",
		"platform", platform,
		"name", offer.Name,
		"synthetic", true,
	)
	return offer
}
