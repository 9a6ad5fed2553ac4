package api

import "context"

// NotificationsService reads the user's notification feed. Delivery of
// new notifications happens over the realtime channel; this service is
// the pull side.
type NotificationsService struct {
	client *Client
}

// List returns the current user's notifications.
func (s *NotificationsService) List(ctx context.Context) (*Envelope, error) {
	return s.client.get(ctx, "/api/notification/get-notifications")
}

// MarkRead marks a notification as read.
func (s *NotificationsService) MarkRead(ctx context.Context, notificationID string) (*Envelope, error) {
	return s.client.put(ctx, "/api/notification/mark-read", map[string]string{"notification": notificationID})
}
