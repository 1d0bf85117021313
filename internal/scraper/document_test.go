package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected float64
		ok       bool
	}{
		{name: "rupiah with thousands separator", text: "Rp 54.600", expected: 54600, ok: true},
		{name: "rupiah without space", text: "Rp129.000", expected: 129000, ok: true},
		{name: "plain digits", text: "500000", expected: 500000, ok: true},
		{name: "embedded in sentence", text: "Harga: Rp 1.250.000,-", expected: 1250000, ok: true},
		{name: "empty string", text: "", ok: false},
		{name: "dash placeholder", text: "-", ok: false},
		{name: "no digits", text: "Gratis Ongkir", ok: false},
		{name: "implausibly large", text: "999999999999", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := parseAmount(tc.text)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, v)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected int
		ok       bool
	}{
		{name: "stock with suffix", text: "61 tersedia", expected: 61, ok: true},
		{name: "stock with prefix", text: "Stok: 45", expected: 45, ok: true},
		{name: "bare number", text: "100", expected: 100, ok: true},
		{name: "empty", text: "", ok: false},
		{name: "zero stock", text: "0 tersedia", ok: false},
		{name: "no digits", text: "Habis", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := parseCount(tc.text)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, v)
			}
		})
	}
}

func TestFirstText(t *testing.T) {
	doc, err := ParseDocument(`
		<html><body>
			<h1 class="specific">   </h1>
			<h2 class="fallback">Second Choice</h2>
			<h3>Third Choice</h3>
		</body></html>`)
	require.NoError(t, err)

	t.Run("skips matches with empty text", func(t *testing.T) {
		got := firstText(doc, []string{".specific", ".fallback", "h3"})
		assert.Equal(t, "Second Choice", got)
	})

	t.Run("no selector matches", func(t *testing.T) {
		got := firstText(doc, []string{".missing", ".also-missing"})
		assert.Equal(t, "", got)
	})
}

func TestNextData(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		doc, err := ParseDocument(`<html><head>
			<script id="__NEXT_DATA__" type="application/json">{"props":{}}</script>
		</head><body></body></html>`)
		require.NoError(t, err)

		payload, ok := doc.NextData()
		assert.True(t, ok)
		assert.JSONEq(t, `{"props":{}}`, payload)
	})

	t.Run("absent", func(t *testing.T) {
		doc, err := ParseDocument(`<html><body><h1>Plain page</h1></body></html>`)
		require.NoError(t, err)

		_, ok := doc.NextData()
		assert.False(t, ok)
	})
}
