package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Headless          bool
	NavigationTimeout time.Duration
	UserAgent         string
	ViewportWidth     int
	ViewportHeight    int
	AcceptLanguage    string
	TimezoneID        string
	Locale            string
}

func DefaultOptions() *Options {
	return &Options{
		Headless:          true,
		NavigationTimeout: 30 * time.Second,
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		AcceptLanguage:    "id-ID,id;q=0.9,en;q=0.8",
		TimezoneID:        "Asia/Jakarta",
		Locale:            "id-ID",
	}
}

// RenderOptions tune one render call for a specific platform. WaitSelector
// is best-effort: missing it delays briefly and proceeds instead of failing.
type RenderOptions struct {
	WaitSelector string
	WaitTimeout  time.Duration
	SettleDelay  time.Duration
}

// Renderer loads product pages in a headless Chromium. Every Render call
// launches and tears down its own browser process; nothing is shared across
// calls, so a wedged session can never bleed into the next request.
type Renderer struct {
	opts   *Options
	logger *slog.Logger
}

func NewRenderer(opts *Options) *Renderer {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Renderer{
		opts:   opts,
		logger: slog.Default().With("component", "browser"),
	}
}

// Render navigates to url, waits for the page to settle and returns the
// rendered HTML. The browser process is released on every exit path.
func (r *Renderer) Render(ctx context.Context, url string, ro RenderOptions) (string, error) {
	pw, err := playwright.Run()
	if err != nil {
		return "", fmt.Errorf("failed to start playwright: %w", err)
	}
	defer pw.Stop()

	headless := r.opts.Headless
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &headless,
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}
	defer b.Close()

	// Both platforms gate content behind responsive breakpoints, so the
	// viewport must look like a real desktop.
	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:  &r.opts.UserAgent,
		Locale:     &r.opts.Locale,
		TimezoneId: &r.opts.TimezoneID,
		Viewport: &playwright.Size{
			Width:  r.opts.ViewportWidth,
			Height: r.opts.ViewportHeight,
		},
		ExtraHttpHeaders: map[string]string{
			"Accept-Language": r.opts.AcceptLanguage,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create browser context: %w", err)
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}

	r.logger.Info("rendering page", "url", url)

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(r.opts.NavigationTimeout.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("navigation failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if ro.WaitSelector != "" {
		timeout := ro.WaitTimeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		if _, err := page.WaitForSelector(ro.WaitSelector, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(float64(timeout.Milliseconds())),
		}); err != nil {
			// Selector wait is best-effort. Give late content a moment
			// and extract whatever is there.
			r.logger.Debug("wait selector not found", "url", url, "selector", ro.WaitSelector)
			time.Sleep(2 * time.Second)
		}
	}

	if ro.SettleDelay > 0 {
		time.Sleep(ro.SettleDelay)
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}

	return html, nil
}
