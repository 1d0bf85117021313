package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/radityabp/eventbudget/internal/database"
	"github.com/radityabp/eventbudget/internal/models"
	"github.com/radityabp/eventbudget/internal/scraper"
)

// ProductFetcher resolves a marketplace link into a product offer.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, link string) (*models.ProductOffer, error)
}

// ProductImporter persists a product and its activity record atomically.
type ProductImporter interface {
	ImportProduct(ctx context.Context, product *database.Product) error
}

type Handlers struct {
	fetcher   ProductFetcher
	importer  ProductImporter
	eventRepo *database.EventRepository
	prodRepo  *database.ProductRepository
	logger    *slog.Logger
}

func NewHandlers(fetcher ProductFetcher, importer ProductImporter, eventRepo *database.EventRepository, prodRepo *database.ProductRepository, logger *slog.Logger) *Handlers {
	return &Handlers{
		fetcher:   fetcher,
		importer:  importer,
		eventRepo: eventRepo,
		prodRepo:  prodRepo,
		logger:    logger,
	}
}

// FetchProductRequest carries the marketplace link to resolve.
type FetchProductRequest struct {
	Link string `json:"link"`
}

// FetchProduct resolves a Shopee or Tokopedia link into an offer without
// persisting anything. Unsupported platforms are the only client error;
// everything past that boundary resolves to some offer.
func (h *Handlers) FetchProduct(w http.ResponseWriter, r *http.Request) {
	var req FetchProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Link == "" {
		h.respondError(w, http.StatusBadRequest, "link is required")
		return
	}

	offer, err := h.fetcher.FetchProduct(r.Context(), req.Link)
	if err != nil {
		if errors.Is(err, scraper.ErrUnsupportedPlatform) {
			h.respondError(w, http.StatusBadRequest, "link must point to shopee.co.id or tokopedia.com")
			return
		}
		h.logger.Error("failed to fetch product", "error", err, "link", req.Link)
		h.respondError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	h.respondJSON(w, http.StatusOK, offer)
}

// EventRequest carries the mutable event fields.
type EventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	event, err := h.eventRepo.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		h.logger.Error("failed to create event", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	h.respondJSON(w, http.StatusCreated, event)
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.eventRepo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	h.respondJSON(w, http.StatusOK, list)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "eventID")
	if !ok {
		return
	}

	event, err := h.eventRepo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "event not found")
			return
		}
		h.logger.Error("failed to get event", "error", err, "event_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to get event")
		return
	}

	products, err := h.prodRepo.ListByEvent(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list event products", "error", err, "event_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to get event")
		return
	}
	event.Products = products

	h.respondJSON(w, http.StatusOK, event)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "eventID")
	if !ok {
		return
	}

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	event, err := h.eventRepo.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "event not found")
			return
		}
		h.logger.Error("failed to update event", "error", err, "event_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to update event")
		return
	}

	h.respondJSON(w, http.StatusOK, event)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "eventID")
	if !ok {
		return
	}

	if err := h.eventRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "event not found")
			return
		}
		h.logger.Error("failed to delete event", "error", err, "event_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddProductRequest carries a product to attach to an event. Fields mirror
// what FetchProduct returns so the client can forward an offer directly.
type AddProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Quantity    int     `json:"quantity"`
	Link        string  `json:"link"`
	Source      string  `json:"source"`
	VariantID   string  `json:"variant_id"`
	VariantName string  `json:"variant_name"`
}

func (h *Handlers) AddProduct(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.parseID(w, r, "eventID")
	if !ok {
		return
	}

	var req AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Source == "" {
		req.Source = database.SourceManual
	}

	if _, err := h.eventRepo.Get(r.Context(), eventID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "event not found")
			return
		}
		h.logger.Error("failed to get event", "error", err, "event_id", eventID)
		h.respondError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	product := &database.Product{
		EventID:  eventID,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Quantity: req.Quantity,
		Link:     req.Link,
		Source:   req.Source,
	}
	if req.VariantID != "" {
		product.VariantID = &req.VariantID
	}
	if req.VariantName != "" {
		product.VariantName = &req.VariantName
	}

	if err := h.importer.ImportProduct(r.Context(), product); err != nil {
		h.logger.Error("failed to add product", "error", err, "event_id", eventID)
		h.respondError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	h.respondJSON(w, http.StatusCreated, product)
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.parseID(w, r, "eventID")
	if !ok {
		return
	}

	products, err := h.prodRepo.ListByEvent(r.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to list products", "error", err, "event_id", eventID)
		h.respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

// UpdateProductRequest carries the editable product fields.
type UpdateProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Quantity int     `json:"quantity"`
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "productID")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	product, err := h.prodRepo.Update(r.Context(), id, req.Name, req.Price, req.Stock, req.Quantity)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to update product", "error", err, "product_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.prodRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to delete product", "error", err, "product_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BudgetResponse is the running total for one event.
type BudgetResponse struct {
	EventID uuid.UUID `json:"event_id"`
	Total   float64   `json:"total"`
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.parseID(w, r, "eventID")
	if !ok {
		return
	}

	total, err := h.prodRepo.EventBudget(r.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to compute budget", "error", err, "event_id", eventID)
		h.respondError(w, http.StatusInternalServerError, "failed to compute budget")
		return
	}

	h.respondJSON(w, http.StatusOK, BudgetResponse{EventID: eventID, Total: total})
}

func (h *Handlers) parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// Helper methods
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
