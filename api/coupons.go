package api

import (
	"context"
	"fmt"
	"strings"
)

// CouponsService manages discount coupons. Server-side validation is out
// of scope; the only client-side check is that a code is present before
// any network call.
type CouponsService struct {
	client *Client
}

// ApplyCouponRequest redeems a coupon code against a booking total.
type ApplyCouponRequest struct {
	Code    string `json:"code"`
	SalonID string `json:"salon"`
	Total   int    `json:"total"`
}

// ListBySalon returns a salon's coupons.
func (s *CouponsService) ListBySalon(ctx context.Context, salonID string) (*Envelope, error) {
	return s.client.post(ctx, "/api/coupon/get-coupons-by-salon", map[string]string{"salon": salonID})
}

// Apply redeems a coupon. An empty code is rejected locally without a
// network round-trip.
func (s *CouponsService) Apply(ctx context.Context, req ApplyCouponRequest) (*Envelope, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("api: coupon code is required")
	}
	return s.client.post(ctx, "/api/coupon/apply-coupon", req)
}
