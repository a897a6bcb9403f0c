// Package merchant keeps the Google Merchant Center catalogue in step with
// the storefront. The storefront side posts change notifications; the
// merchant-sync function applies them through the Content API.
package merchant

import "produce-kart/internal/model"

// ListingData is the product payload of a sync request. A nil ListingData
// in a request means the product was deleted.
type ListingData struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// SyncRequest is the body accepted by the merchant-sync function.
type SyncRequest struct {
	ProductID string       `json:"productId"`
	Data      *ListingData `json:"data"`
}

// SyncResponse is returned on a successful sync.
type SyncResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// ListingFromProduct converts a catalogue product into listing data. Box
// products are listed at their cheapest box price.
func ListingFromProduct(p *model.Product) *ListingData {
	price, _ := p.ListingPrice()
	return &ListingData{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.ImageURL,
		Price:       price,
	}
}
