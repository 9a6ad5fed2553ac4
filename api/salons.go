package api

import "context"

// SalonsService reads and updates salon records.
type SalonsService struct {
	client *Client
}

// UpdateSalonRequest edits a salon profile.
type UpdateSalonRequest struct {
	SalonID string         `json:"salon"`
	Fields  map[string]any `json:"fields"`
}

// List returns all visible salons.
func (s *SalonsService) List(ctx context.Context) (*Envelope, error) {
	return s.client.get(ctx, "/api/salon/get-salons")
}

// Get returns one salon by id.
func (s *SalonsService) Get(ctx context.Context, salonID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/salon/get-salon-by-id", map[string]string{"salon": salonID})
}

// Update edits a salon profile.
func (s *SalonsService) Update(ctx context.Context, req UpdateSalonRequest) (*Envelope, error) {
	return s.client.put(ctx, "/api/salon/update-salon", req)
}
