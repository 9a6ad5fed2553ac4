package api

import "context"

// AvailabilityService exposes the server-computed booking slots. Slot
// computation and conflict resolution happen entirely server-side; the
// client only displays results and submits choices.
type AvailabilityService struct {
	client *Client
}

// AvailabilityRequest asks for open slots on a date.
type AvailabilityRequest struct {
	SalonID   string   `json:"salon"`
	StylistID string   `json:"stylist,omitempty"`
	Services  []string `json:"services,omitempty"`
	Date      string   `json:"date"` // YYYY-MM-DD
}

// ByDate returns the open slots for a salon (and optionally stylist) on
// the given date.
func (s *AvailabilityService) ByDate(ctx context.Context, req AvailabilityRequest) (*Envelope, error) {
	return s.client.post(ctx, "/api/appointment/get-available-appointment-by-date", req)
}
