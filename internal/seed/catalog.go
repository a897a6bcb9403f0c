// Package seed loads catalogue fixtures and writes them to the store.
package seed

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"

	"produce-kart/internal/model"

	"gopkg.in/yaml.v3"
)

// Catalog is a complete storefront fixture.
type Catalog struct {
	IsOfferWeek bool           `yaml:"isOfferWeek"`
	Products    []ProductEntry `yaml:"products"`
	Offers      []OfferEntry   `yaml:"offers"`
	Merits      []MeritEntry   `yaml:"merits"`
}

// ProductEntry is a product in a fixture file. Entries without an id get
// one assigned when seeded.
type ProductEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Category    string         `yaml:"category"`
	Type        string         `yaml:"type"`
	Price       float64        `yaml:"price"`
	OfferPrice  float64        `yaml:"offerPrice"`
	BoxSizes    []BoxSizeEntry `yaml:"boxSizes"`
	ImageURL    string         `yaml:"imageUrl"`
	Description string         `yaml:"description"`
}

type BoxSizeEntry struct {
	Size       string  `yaml:"size"`
	Price      float64 `yaml:"price"`
	OfferPrice float64 `yaml:"offerPrice"`
}

// OfferEntry is an offer in a fixture file.
type OfferEntry struct {
	ID        string  `yaml:"id"`
	ProductID string  `yaml:"productId"`
	Title     string  `yaml:"title"`
	Discount  float64 `yaml:"discount"`
	Price     float64 `yaml:"price"`
	EndDate   string  `yaml:"endDate"`
	ImageURL  string  `yaml:"imageUrl"`
}

// MeritEntry is a merit in a fixture file.
type MeritEntry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
}

// Input converts the entry to the admin form payload.
func (e ProductEntry) Input() model.ProductInput {
	sizes := make([]model.BoxSize, 0, len(e.BoxSizes))
	for _, b := range e.BoxSizes {
		sizes = append(sizes, model.BoxSize{Size: b.Size, Price: b.Price, OfferPrice: b.OfferPrice})
	}
	return model.ProductInput{
		Name:        e.Name,
		Category:    model.Category(e.Category),
		Type:        model.PricingType(e.Type),
		Price:       e.Price,
		OfferPrice:  e.OfferPrice,
		BoxSizes:    sizes,
		ImageURL:    e.ImageURL,
		Description: e.Description,
	}
}

// Input converts the entry to the admin form payload.
func (e OfferEntry) Input() model.OfferInput {
	return model.OfferInput{
		ProductID: e.ProductID,
		Title:     e.Title,
		Discount:  e.Discount,
		Price:     e.Price,
		EndDate:   e.EndDate,
		ImageURL:  e.ImageURL,
	}
}

// Input converts the entry to the admin form payload.
func (e MeritEntry) Input() model.MeritInput {
	return model.MeritInput{Title: e.Title, Description: e.Description, ImageURL: e.ImageURL}
}

// Loader reads a catalog from some location.
type Loader interface {
	Load(ctx context.Context, path string) (*Catalog, error)
}

// decode parses YAML from r, transparently gunzipping when name ends in .gz.
func decode(r io.Reader, name string) (*Catalog, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}

	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}
	return &c, nil
}
