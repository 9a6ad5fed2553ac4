package api

import "context"

// AppointmentsService manages bookings.
type AppointmentsService struct {
	client *Client
}

// BookAppointmentRequest creates a booking for a salon slot.
type BookAppointmentRequest struct {
	SalonID   string   `json:"salon"`
	StylistID string   `json:"stylist,omitempty"`
	Services  []string `json:"services"`
	Date      string   `json:"date"` // YYYY-MM-DD
	Slot      string   `json:"slot"` // e.g. "10:30"
	CouponID  string   `json:"coupon,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// UpdateStatusRequest transitions an appointment.
type UpdateStatusRequest struct {
	AppointmentID string `json:"appointment"`
	Status        string `json:"status"` // pending|accepted|rejected|completed|cancelled
}

// Book creates an appointment.
func (s *AppointmentsService) Book(ctx context.Context, req BookAppointmentRequest) (*Envelope, error) {
	return s.client.post(ctx, "/api/appointment/book-appointment", req)
}

// ListByUser returns the current user's appointments.
func (s *AppointmentsService) ListByUser(ctx context.Context) (*Envelope, error) {
	return s.client.get(ctx, "/api/appointment/get-appointments-by-user")
}

// ListBySalon returns a salon's appointments.
func (s *AppointmentsService) ListBySalon(ctx context.Context, salonID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/appointment/get-appointments-by-salon", map[string]string{"salon": salonID})
}

// ListByStylist returns a stylist's appointments.
func (s *AppointmentsService) ListByStylist(ctx context.Context, stylistID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/appointment/get-appointments-by-stylist", map[string]string{"stylist": stylistID})
}

// UpdateStatus transitions an appointment's status.
func (s *AppointmentsService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*Envelope, error) {
	return s.client.put(ctx, "/api/appointment/update-appointment-status", req)
}

// Cancel cancels an appointment.
func (s *AppointmentsService) Cancel(ctx context.Context, appointmentID string) (*Envelope, error) {
	return s.client.put(ctx, "/api/appointment/cancel-appointment", map[string]string{"appointment": appointmentID})
}
