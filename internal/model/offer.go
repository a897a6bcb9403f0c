package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a time-boxed discount on a single product.
type Offer struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	ProductID string    `json:"productId" bson:"productId" db:"product_id"`
	Title     string    `json:"title" bson:"title" db:"title"`
	Discount  float64   `json:"discount" bson:"discount" db:"discount"`
	Price     float64   `json:"price" bson:"price" db:"price"`
	EndDate   time.Time `json:"endDate" bson:"endDate" db:"end_date"`
	ImageURL  string    `json:"imageUrl" bson:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}

// OfferPrice returns price - price*discount/100 rounded to two decimals.
func (o *Offer) OfferPrice() decimal.Decimal {
	price := decimal.NewFromFloat(o.Price)
	cut := price.Mul(decimal.NewFromFloat(o.Discount)).Div(decimal.NewFromInt(100))
	return price.Sub(cut).Round(2)
}

// Expired reports whether the offer ended before now.
func (o *Offer) Expired(now time.Time) bool {
	return now.After(o.EndDate)
}

// OfferInput is the admin form payload for an offer.
type OfferInput struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Discount  float64 `json:"discount"`
	Price     float64 `json:"price"`
	EndDate   string  `json:"endDate"`
	ImageURL  string  `json:"imageUrl"`
}

// Apply validates the input and copies it onto o.
func (in OfferInput) Apply(o *Offer) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return MissingField("title")
	}
	if in.Discount < 0 || in.Discount > 100 {
		return ErrInvalidDiscount
	}
	if in.Price < 0 {
		return ErrInvalidPrice
	}
	end, err := ParseOfferDate(in.EndDate)
	if err != nil {
		return err
	}

	o.ProductID = strings.TrimSpace(in.ProductID)
	o.Title = title
	o.Discount = in.Discount
	o.Price = in.Price
	o.EndDate = end
	o.ImageURL = strings.TrimSpace(in.ImageURL)
	return nil
}

var offerDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseOfferDate accepts RFC 3339 timestamps as well as the date and
// datetime-local values produced by HTML inputs. Values without a zone are
// interpreted in UTC; a bare date means midnight at the start of that day.
func ParseOfferDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, MissingField("endDate")
	}
	for _, layout := range offerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// OfferView is an offer as shown on the landing page.
type OfferView struct {
	Offer
	OfferPrice decimal.Decimal `json:"offerPrice"`
	Expired    bool            `json:"expired"`
}

// NewOfferView computes the display fields of o at now.
func NewOfferView(o Offer, now time.Time) OfferView {
	return OfferView{
		Offer:      o,
		OfferPrice: o.OfferPrice(),
		Expired:    o.Expired(now),
	}
}
