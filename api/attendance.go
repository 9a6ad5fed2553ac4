package api

import "context"

// AttendanceService tracks stylist check-ins.
type AttendanceService struct {
	client *Client
}

// MarkAttendanceRequest records a stylist's attendance for a day.
type MarkAttendanceRequest struct {
	StylistID string `json:"stylist"`
	Date      string `json:"date"` // YYYY-MM-DD
	Present   bool   `json:"present"`
}

// Mark records attendance.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*Envelope, error) {
	return s.client.post(ctx, "/api/attendance/mark-attendance", req)
}

// ListByStylist returns a stylist's attendance history.
func (s *AttendanceService) ListByStylist(ctx context.Context, stylistID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/attendance/get-attendance-by-stylist", map[string]string{"stylist": stylistID})
}
