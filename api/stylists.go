package api

import "context"

// StylistsService manages a salon's stylists.
type StylistsService struct {
	client *Client
}

// AddStylistRequest registers a stylist under a salon.
type AddStylistRequest struct {
	SalonID string `json:"salon"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email,omitempty"`
}

// ListBySalon returns the stylists of a salon.
func (s *StylistsService) ListBySalon(ctx context.Context, salonID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/stylist/get-stylists-by-salon", map[string]string{"salon": salonID})
}

// Get returns one stylist by id.
func (s *StylistsService) Get(ctx context.Context, stylistID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/stylist/get-stylist-by-id", map[string]string{"stylist": stylistID})
}

// Add registers a stylist.
func (s *StylistsService) Add(ctx context.Context, req AddStylistRequest) (*Envelope, error) {
	return s.client.post(ctx, "/api/stylist/add-stylist", req)
}

// Remove deletes a stylist.
func (s *StylistsService) Remove(ctx context.Context, stylistID string) (*Envelope, error) {
	return s.client.delete(ctx, "/api/stylist/delete-stylist/"+stylistID)
}
