package model

import (
	"strings"
	"time"
)

// Category is the catalogue section a product is listed under.
type Category string

const (
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryJuice     Category = "juice"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryVegetable, CategoryFruit, CategoryJuice:
		return true
	}
	return false
}

// PricingType describes how a product is sold.
type PricingType string

const (
	PricingPerKg    PricingType = "kg"
	PricingPerBox   PricingType = "box"
	PricingPerPiece PricingType = "piece"
)

// Valid reports whether t is one of the known pricing modes.
func (t PricingType) Valid() bool {
	switch t {
	case PricingPerKg, PricingPerBox, PricingPerPiece:
		return true
	}
	return false
}

// Unit is the short label printed next to quantities and prices.
func (t PricingType) Unit() string {
	switch t {
	case PricingPerBox:
		return "box"
	case PricingPerPiece:
		return "pc"
	default:
		return "kg"
	}
}

// BoxSize is a named package variant with its own price.
type BoxSize struct {
	Size       string  `json:"size" bson:"size"`
	Price      float64 `json:"price" bson:"price"`
	OfferPrice float64 `json:"offerPrice,omitempty" bson:"offerPrice,omitempty"`
}

// Product represents a produce item in the catalogue.
type Product struct {
	ID          string      `json:"id" bson:"_id" db:"id"`
	Name        string      `json:"name" bson:"name" db:"name"`
	Category    Category    `json:"category" bson:"category" db:"category"`
	Type        PricingType `json:"type" bson:"type" db:"type"`
	Price       *float64    `json:"price,omitempty" bson:"price,omitempty" db:"price"`
	OfferPrice  *float64    `json:"offerPrice,omitempty" bson:"offerPrice,omitempty" db:"offer_price"`
	BoxSizes    []BoxSize   `json:"boxSizes" bson:"boxSizes" db:"box_sizes"`
	ImageURL    string      `json:"imageUrl" bson:"imageUrl" db:"image_url"`
	Description string      `json:"description" bson:"description" db:"description"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// ProductInput is the admin form payload for creating or updating a product.
type ProductInput struct {
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Type        PricingType `json:"type"`
	Price       float64     `json:"price"`
	OfferPrice  float64     `json:"offerPrice"`
	BoxSizes    []BoxSize   `json:"boxSizes"`
	ImageURL    string      `json:"imageUrl"`
	Description string      `json:"description"`
}

// ProductFilter narrows a catalogue listing.
type ProductFilter struct {
	Category Category
	Limit    int
	Offset   int
}

// Normalise validates the form input and applies it to p. Per-kg and
// per-piece products keep price and offer price and drop box sizes; box
// products drop the flat prices and keep only box sizes that have a size
// label and a non-negative price.
func (in ProductInput) Normalise(p *Product) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return MissingField("name")
	}
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if !in.Type.Valid() {
		return ErrInvalidPricingType
	}

	p.Name = name
	p.Category = in.Category
	p.Type = in.Type
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.Description = strings.TrimSpace(in.Description)

	switch in.Type {
	case PricingPerBox:
		p.Price = nil
		p.OfferPrice = nil
		sizes := make([]BoxSize, 0, len(in.BoxSizes))
		for _, b := range in.BoxSizes {
			b.Size = strings.TrimSpace(b.Size)
			if b.Size == "" || b.Price < 0 {
				continue
			}
			if b.OfferPrice < 0 {
				b.OfferPrice = 0
			}
			sizes = append(sizes, b)
		}
		p.BoxSizes = sizes
	default:
		if in.Price < 0 || in.OfferPrice < 0 {
			return ErrInvalidPrice
		}
		price, offer := in.Price, in.OfferPrice
		p.Price = &price
		p.OfferPrice = &offer
		p.BoxSizes = []BoxSize{}
	}

	return nil
}

// UnitPrice returns the price charged for one unit of the product, using the
// offer price when one is set.
func (p *Product) UnitPrice() float64 {
	if p.OfferPrice != nil && *p.OfferPrice > 0 {
		return *p.OfferPrice
	}
	if p.Price != nil {
		return *p.Price
	}
	return 0
}

// BoxSize looks up a box variant by its size label.
func (p *Product) BoxSize(size string) (BoxSize, bool) {
	for _, b := range p.BoxSizes {
		if b.Size == size {
			return b, true
		}
	}
	return BoxSize{}, false
}

// ListingPrice returns the price advertised for the product: the unit price
// for per-kg and per-piece products, the cheapest box otherwise. ok is false
// when the product has no usable price.
func (p *Product) ListingPrice() (price float64, ok bool) {
	if p.Type != PricingPerBox {
		price = p.UnitPrice()
		return price, price > 0
	}
	for _, b := range p.BoxSizes {
		v := b.EffectivePrice()
		if v > 0 && (!ok || v < price) {
			price, ok = v, true
		}
	}
	return price, ok
}

// EffectivePrice returns the offer price of a box if set, its regular price otherwise.
func (b BoxSize) EffectivePrice() float64 {
	if b.OfferPrice > 0 {
		return b.OfferPrice
	}
	return b.Price
}
