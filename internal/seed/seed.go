package seed

import (
	"context"
	"fmt"

	catalogsvc "storefront/internal/service/catalog"
)

// Apply loads the demo catalog through the catalog service, so it works
// against either store backend and passes the same validation as any other
// write. It is idempotent: a non-empty catalog is left alone.
func Apply(ctx context.Context, catalog *catalogsvc.Service) error {
	existing, err := catalog.Categories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, c := range categories() {
		if _, err := catalog.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("create category %s: %w", c.Name, err)
		}
	}
	for _, p := range products() {
		if _, err := catalog.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("create product %s: %w", p.Name, err)
		}
	}
	return nil
}

func categories() []catalogsvc.CreateCategoryInput {
	return []catalogsvc.CreateCategoryInput{
		{Name: "Clothing", Image: "https://images.unsplash.com/photo-1490367532201-b9bc1dc483f6?w=400"},
		{Name: "Shoes", Image: "https://images.unsplash.com/photo-1491553895911-0055eca6402d?w=400"},
		{Name: "Accessories", Image: "https://images.unsplash.com/photo-1523170335258-f5ed11844a49?w=400"},
		{Name: "Electronics", Image: "https://images.unsplash.com/photo-1525547719571-a2d4ac8945e2?w=400"},
	}
}

func products() []catalogsvc.CreateProductInput {
	price := func(v float64) *float64 { return &v }
	return []catalogsvc.CreateProductInput{
		{
			Name:        "Premium Denim Jacket",
			Description: "A premium denim jacket that goes well with any outfit. Made with high-quality materials for comfort and durability.",
			Price:       89.99,
			Category:    "Clothing",
			Image:       "https://images.unsplash.com/photo-1523381210434-271e8be1f52b?w=400",
			Rating:      4.5, ReviewCount: 24, Stock: 50, Featured: true, Badge: "New",
		},
		{
			Name:        "Nike Air Max",
			Description: "The Nike Air Max features a visible cushioning unit in the heel for maximum impact protection during exercise.",
			Price:       139.99, DiscountedPrice: price(119.99),
			Category: "Shoes",
			Image:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400",
			Rating:   5.0, ReviewCount: 42, Stock: 30, Featured: true, Badge: "Sale",
		},
		{
			Name:        "Leather Watch",
			Description: "A classic leather watch with a timeless design. Perfect for everyday wear or special occasions.",
			Price:       59.99,
			Category:    "Accessories",
			Image:       "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=400",
			Rating:      4.0, ReviewCount: 16, Stock: 25, Featured: true,
		},
		{
			Name:        "Wireless Headphones",
			Description: "Experience immersive sound with these wireless headphones. Features noise cancellation and long battery life.",
			Price:       129.99,
			Category:    "Electronics",
			Image:       "https://images.unsplash.com/photo-1560343090-f0409e92791a?w=400",
			Rating:      4.5, ReviewCount: 68, Stock: 15, Featured: true, Badge: "Best Seller",
		},
		{
			Name:        "Casual T-Shirt",
			Description: "A comfortable casual t-shirt made with 100% cotton. Available in multiple colors and sizes.",
			Price:       24.99,
			Category:    "Clothing",
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
			Rating:      4.2, ReviewCount: 31, Stock: 100,
		},
		{
			Name:        "Running Shoes",
			Description: "Lightweight running shoes with superior cushioning and support for maximum comfort during your run.",
			Price:       79.99,
			Category:    "Shoes",
			Image:       "https://images.unsplash.com/photo-1460353581641-37baddab0fa2?w=400",
			Rating:      4.3, ReviewCount: 28, Stock: 45,
		},
		{
			Name:        "Smartphone Case",
			Description: "Protect your smartphone with this durable and stylish case. Available for various models.",
			Price:       19.99,
			Category:    "Accessories",
			Image:       "https://images.unsplash.com/photo-1509395062183-67c5ad6faff9?w=400",
			Rating:      4.1, ReviewCount: 19, Stock: 60,
		},
		{
			Name:        "Bluetooth Speaker",
			Description: "A portable Bluetooth speaker with impressive sound quality and up to 10 hours of battery life.",
			Price:       49.99,
			Category:    "Electronics",
			Image:       "https://images.unsplash.com/photo-1547394765-185e1e68f34e?w=400",
			Rating:      4.4, ReviewCount: 36, Stock: 20,
		},
	}
}
