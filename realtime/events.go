package realtime

// Inbound event names.
const (
	EventAppointmentRequest     = "appointment-request"
	EventFirstLoginReward       = "first-login-reward"
	EventFirstAppointmentReward = "first-appointment-reward"
	EventCompleteProfile        = "complete-profile"
	EventOnlineUsers            = "online-users"
)

// Outbound signal names.
const (
	SignalFirstLogin             = "first-login"
	SignalFirstAppointmentBooked = "first-appointment-booked"
)

// OnAppointmentRequest subscribes to new appointment requests (salon and
// stylist areas).
func (c *Client) OnAppointmentRequest(handler Handler) func() {
	return c.On(EventAppointmentRequest, handler)
}

// OnFirstLoginReward subscribes to the first-login coin reward.
func (c *Client) OnFirstLoginReward(handler Handler) func() {
	return c.On(EventFirstLoginReward, handler)
}

// OnFirstAppointmentReward subscribes to the first-booking coin reward.
func (c *Client) OnFirstAppointmentReward(handler Handler) func() {
	return c.On(EventFirstAppointmentReward, handler)
}

// OnCompleteProfile subscribes to profile-completion prompts.
func (c *Client) OnCompleteProfile(handler Handler) func() {
	return c.On(EventCompleteProfile, handler)
}

// OnOnlineUsers subscribes to presence updates. Presence goes through
// the same registration interface as every other event; the shared
// presence store is just one subscriber among others.
func (c *Client) OnOnlineUsers(handler Handler) func() {
	return c.On(EventOnlineUsers, handler)
}

// EmitFirstLogin signals that the first login finished client-side.
func (c *Client) EmitFirstLogin() error {
	return c.Emit(SignalFirstLogin, map[string]string{"userId": c.identity.UserID})
}

// EmitFirstAppointmentBooked signals the user's first completed booking.
func (c *Client) EmitFirstAppointmentBooked() error {
	return c.Emit(SignalFirstAppointmentBooked, map[string]string{"userId": c.identity.UserID})
}
