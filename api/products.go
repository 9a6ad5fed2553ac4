package api

import "context"

// ProductsService manages a salon's retail products.
type ProductsService struct {
	client *Client
}

// AddProductRequest adds a retail product.
type AddProductRequest struct {
	SalonID string `json:"salon"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
	Stock   int    `json:"stock"`
	Image   string `json:"image,omitempty"`
}

// ListBySalon returns a salon's products.
func (s *ProductsService) ListBySalon(ctx context.Context, salonID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/product/get-products-by-salon", map[string]string{"salon": salonID})
}

// Add creates a product.
func (s *ProductsService) Add(ctx context.Context, req AddProductRequest) (*Envelope, error) {
	return s.client.post(ctx, "/api/product/add-product", req)
}

// Remove deletes a product.
func (s *ProductsService) Remove(ctx context.Context, productID string) (*Envelope, error) {
	return s.client.delete(ctx, "/api/product/delete-product/"+productID)
}
