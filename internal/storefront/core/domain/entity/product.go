package entity

import "math"

// placeholderImageURL is the catalog's stand-in image; cards replace it with
// fallbackImageURL.
const (
	placeholderImageURL = "https://example.com/laptop.jpg"
	fallbackImageURL    = "https://images.pexels.com/photos/303383/pexels-photo-303383.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"
)

// Product is a digital product as served by the catalog endpoint.
// Prices are whole currency units.
type Product struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	ImageURL      string `json:"imageUrl"`
	Description   string `json:"description"`
	OriginalPrice int64  `json:"originalPrice"`
	PurchasePrice int64  `json:"purchasePrice"`
	DriveLink     string `json:"driveLink"`
	CreatedAt     string `json:"createdAt"`
}

// Savings is the difference between the original and the purchase price.
func (p Product) Savings() int64 {
	return p.OriginalPrice - p.PurchasePrice
}

// DiscountPercent is the rounded discount relative to the original price.
func (p Product) DiscountPercent() int64 {
	if p.OriginalPrice <= 0 {
		return 0
	}
	return int64(math.Round(float64(p.Savings()) / float64(p.OriginalPrice) * 100))
}

// DisplayImage returns the image to render on the product card.
func (p Product) DisplayImage() string {
	if p.ImageURL == placeholderImageURL {
		return fallbackImageURL
	}
	return p.ImageURL
}
