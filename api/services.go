package api

import "context"

// ServicesService manages a salon's service catalog (haircuts, coloring,
// and so on).
type ServicesService struct {
	client *Client
}

// AddServiceRequest adds a catalog entry.
type AddServiceRequest struct {
	SalonID  string `json:"salon"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Duration int    `json:"duration"` // minutes
}

// ListBySalon returns a salon's catalog.
func (s *ServicesService) ListBySalon(ctx context.Context, salonID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/service/get-services-by-salon", map[string]string{"salon": salonID})
}

// Add creates a catalog entry.
func (s *ServicesService) Add(ctx context.Context, req AddServiceRequest) (*Envelope, error) {
	return s.client.post(ctx, "/api/service/add-service", req)
}

// Remove deletes a catalog entry.
func (s *ServicesService) Remove(ctx context.Context, serviceID string) (*Envelope, error) {
	return s.client.delete(ctx, "/api/service/delete-service/"+serviceID)
}
