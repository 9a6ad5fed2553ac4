package session

// Sentinel identifiers used by demo mode. Deterministic so that repeated
// demo navigation shows consistent associations.
const (
	DemoToken     = "demo_token"
	DemoUserID    = "demo_user_001"
	DemoSalonID   = "demo_salon_001"
	DemoStylistID = "demo_stylist_001"
)

// demoUser synthesizes the fixed demo profile for a role. Same role always
// yields the same record.
func demoUser(role Role) *User {
	u := &User{
		ID:         DemoUserID,
		Role:       role,
		Email:      "demo@glosshouse.app",
		Mobile:     "+10000000000",
		Timezone:   "UTC",
		Coins:      120,
		IsVerified: true,
	}

	switch AreaForRole(role) {
	case AreaSalon:
		u.Name = "Demo Salon"
		u.Salon = Ref{ID: DemoSalonID}
	case AreaStylist:
		u.Name = "Demo Stylist"
		u.Salon = Ref{ID: DemoSalonID}
		u.Stylist = Ref{ID: DemoStylistID}
	case AreaAdmin:
		u.Name = "Demo Admin"
	default:
		u.Name = "Demo Customer"
	}

	return u
}
