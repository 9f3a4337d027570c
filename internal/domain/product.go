package domain

import "time"

type Product struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DiscountedPrice *float64  `json:"discountedPrice,omitempty"`
	Category        string    `json:"category"`
	Image           string    `json:"image"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"reviewCount"`
	Stock           int       `json:"stock"`
	Featured        bool      `json:"featured"`
	Badge           string    `json:"badge,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UnitPrice is the price a buyer pays for one unit: the discounted price when
// one is set, the base price otherwise.
func (p Product) UnitPrice() float64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}
