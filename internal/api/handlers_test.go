package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/radityabp/eventbudget/internal/models"
	"github.com/radityabp/eventbudget/internal/scraper"
)

// MockFetcher is a mock for the product fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchProduct(ctx context.Context, link string) (*models.ProductOffer, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductOffer), args.Error(1)
}

func newFetchHandlers(fetcher ProductFetcher) *Handlers {
	return NewHandlers(fetcher, nil, nil, nil, slog.Default())
}

func postFetch(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/fetch", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.FetchProduct(rec, req)
	return rec
}

func TestHandlers_FetchProduct(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		h := newFetchHandlers(mockFetcher)

		link := "https://www.tokopedia.com/ugreen/kabel-data"
		offer := &models.ProductOffer{
			Name:    "UGREEN Kabel Data Type C",
			Price:   54600,
			Stock:   61,
			Success: true,
		}
		mockFetcher.On("FetchProduct", mock.Anything, link).Return(offer, nil)

		rec := postFetch(t, h, `{"link":"`+link+`"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got models.ProductOffer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "UGREEN Kabel Data Type C", got.Name)
		assert.Equal(t, float64(54600), got.Price)
		assert.True(t, got.Success)

		mockFetcher.AssertExpectations(t)
	})

	t.Run("missing link", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		h := newFetchHandlers(mockFetcher)

		rec := postFetch(t, h, `{"link":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockFetcher.AssertNotCalled(t, "FetchProduct", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		h := newFetchHandlers(mockFetcher)

		rec := postFetch(t, h, `{"link":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported platform maps to 400", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		h := newFetchHandlers(mockFetcher)

		link := "https://example.com/product"
		mockFetcher.On("FetchProduct", mock.Anything, link).
			Return(nil, scraper.ErrUnsupportedPlatform)

		rec := postFetch(t, h, `{"link":"`+link+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "shopee.co.id or tokopedia.com")

		mockFetcher.AssertExpectations(t)
	})

	t.Run("synthetic offer passes through untouched", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		h := newFetchHandlers(mockFetcher)

		link := "https://shopee.co.id/flaky-page-i.1.2"
		offer := &models.ProductOffer{
			Name:      "Tenda Pramuka 4x4 Meter - Waterproof",
			Price:     500000,
			Stock:     42,
			Success:   true,
			Synthetic: true,
		}
		mockFetcher.On("FetchProduct", mock.Anything, link).Return(offer, nil)

		rec := postFetch(t, h, `{"link":"`+link+`"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		// clients see a normal success; the synthetic flag stays internal
		assert.NotContains(t, rec.Body.String(), "ynthetic")
		assert.Contains(t, rec.Body.String(), `"success":true`)
	})
}
