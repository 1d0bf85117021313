package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSanePrice rejects scraped noise that strips down to an implausible
// number (review counts, SKU ids and the like).
const maxSanePrice = 1_000_000_000

// RenderedDocument wraps the fully rendered HTML of one product page and
// exposes the queries the extractors need.
type RenderedDocument struct {
	doc *goquery.Document
}

func ParseDocument(html string) (*RenderedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &RenderedDocument{doc: doc}, nil
}

func (d *RenderedDocument) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

func (d *RenderedDocument) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// NextData returns the Next.js bootstrap payload, if the page embeds one.
func (d *RenderedDocument) NextData() (string, bool) {
	text := strings.TrimSpace(d.doc.Find(`script#__NEXT_DATA__`).First().Text())
	return text, text != ""
}

// JSONScripts returns the contents of every application/json script tag.
func (d *RenderedDocument) JSONScripts() []string {
	var payloads []string
	d.doc.Find(`script[type="application/json"]`).Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			payloads = append(payloads, text)
		}
	})
	return payloads
}

// firstText returns the trimmed text of the first selector that matches an
// element with non-empty text. First match wins; selectors are ordered from
// most specific to most generic.
func firstText(d *RenderedDocument, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(d.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// sweepText walks every match of every selector and returns the first text
// the keep filter accepts.
func sweepText(d *RenderedDocument, selectors []string, keep func(string) bool) string {
	for _, selector := range selectors {
		var found string
		d.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if text != "" && keep(text) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAmount reads a rendered price by stripping every non-digit rune.
// Both platforms render IDR with dot thousands separators and no decimal
// subunits, so the remainder parses as an integer amount. Zero, negative
// or out-of-bounds parses count as "no match", not as a valid zero.
func parseAmount(text string) (float64, bool) {
	digits := digitsOnly(text)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil || v <= 0 || v >= maxSanePrice {
		return 0, false
	}
	return v, true
}

// parseCount reads a stock quantity the same way ("61 tersedia" -> 61).
func parseCount(text string) (int, bool) {
	digits := digitsOnly(text)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
