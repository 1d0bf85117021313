package models

const (
	// NameNotFound is returned as the offer name when no strategy could
	// extract a product name from the page.
	NameNotFound = "Product Name Not Found"

	// UnknownShop is used when the seller name could not be resolved.
	UnknownShop = "Unknown Shop"

	// DefaultVariantName marks the synthetic placeholder variant created
	// when a page exposes no real variants.
	DefaultVariantName = "Default"

	// DefaultStock is assumed when a platform exposes no stock signal.
	DefaultStock = 100
)

// Variant is one purchasable configuration of a product. IDs follow the
// "variant-<index>" pattern and are stable only within a single fetch.
type Variant struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ProductOffer is the normalized result of one product-page fetch. Variants
// are omitted entirely (not an empty list) when the page had no real
// variants, so callers can tell "no variants" from "one default variant".
type ProductOffer struct {
	Name              string    `json:"name"`
	ShopName          string    `json:"shopName,omitempty"`
	Price             float64   `json:"price"`
	Stock             int       `json:"stock"`
	Variants          []Variant `json:"variants,omitempty"`
	SelectedVariantID string    `json:"selectedVariantId,omitempty"`
	Success           bool      `json:"success"`

	// Synthetic reports that the offer came from the sample catalog rather
	// than a live page. Logged for operators, never sent to callers.
	Synthetic bool `json:"-"`
}

// FirstVariant returns the default (first) variant, if any.
func (o *ProductOffer) FirstVariant() *Variant {
	if len(o.Variants) == 0 {
		return nil
	}
	return &o.Variants[0]
}
