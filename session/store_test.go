package session

import (
	"context"
	"errors"
	"testing"

	"github.com/glosshouse/glosshouse-go/tokenstore"
)

func newTestStore(t *testing.T) (*Store, *tokenstore.Memory) {
	t.Helper()
	tokens := tokenstore.NewMemory()
	store, err := NewStore(Config{Tokens: tokens})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store, tokens
}

func TestLogin_SetsAuthenticatedState(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := &User{ID: "u1", Name: "Ada", Role: RoleUser}
	if err := store.Login(ctx, Credentials{User: user, Token: "abc123"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	snap := store.Snapshot()
	if !snap.Authenticated {
		t.Error("Authenticated = false after Login")
	}
	if snap.User == nil || snap.Token == "" {
		t.Error("user and token must be set after Login")
	}
	if snap.Loading {
		t.Error("Loading should be false after Login")
	}
	if snap.Demo {
		t.Error("Demo should be false after live Login")
	}
}

func TestLogin_SalonSelfReference(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// A salon account with no salon reference is its own salon.
	user := &User{ID: "salon-9", Role: RoleSalon}
	if err := store.Login(ctx, Credentials{User: user, Token: "t"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got := store.Snapshot().SalonID; got != "salon-9" {
		t.Errorf("SalonID = %q, want salon-9", got)
	}

	// An explicit reference wins over the self-reference rule.
	user2 := &User{ID: "owner-1", Role: RoleSalon, Salon: Ref{ID: "salon-7"}}
	if err := store.Login(ctx, Credentials{User: user2, Token: "t2"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got := store.Snapshot().SalonID; got != "salon-7" {
		t.Errorf("SalonID = %q, want salon-7", got)
	}
}

func TestLogin_NoAssociations(t *testing.T) {
	store, _ := newTestStore(t)

	user := &User{ID: "u1", Role: RoleUser}
	if err := store.Login(context.Background(), Credentials{User: user, Token: "t"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	snap := store.Snapshot()
	if snap.SalonID != "" || snap.StylistID != "" {
		t.Errorf("derived ids = (%q, %q), want empty for a plain user", snap.SalonID, snap.StylistID)
	}
}

func TestLogin_PersistFailureLeavesStateUntouched(t *testing.T) {
	tokens := tokenstore.NewMemory()
	tokens.FailSave = errors.New("storage unavailable")
	store, err := NewStore(Config{Tokens: tokens})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	user := &User{ID: "u1", Role: RoleUser}
	if err := store.Login(context.Background(), Credentials{User: user, Token: "t"}); err == nil {
		t.Fatal("Login() should fail when the token write fails")
	}

	snap := store.Snapshot()
	if snap.Authenticated || snap.User != nil || snap.Token != "" {
		t.Error("session must remain unauthenticated after a failed token write")
	}
}

func TestDemoLogin_Deterministic(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, role := range []Role{RoleSalon, RoleStylist, RoleUser} {
		store.DemoLogin(role)
		first := store.Snapshot()

		if err := store.Logout(ctx); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}

		store.DemoLogin(role)
		second := store.Snapshot()

		if first.User.ID != second.User.ID ||
			first.SalonID != second.SalonID ||
			first.StylistID != second.StylistID {
			t.Errorf("role %s: demo sentinels differ between runs", role)
		}
		if second.Token != DemoToken {
			t.Errorf("role %s: token = %q, want %q", role, second.Token, DemoToken)
		}
		if !second.Demo {
			t.Errorf("role %s: Demo flag not set", role)
		}
	}
}

func TestDemoLogin_Sentinels(t *testing.T) {
	store, _ := newTestStore(t)

	store.DemoLogin(RoleStylist)
	snap := store.Snapshot()
	if snap.User.ID != DemoUserID {
		t.Errorf("user id = %q, want %q", snap.User.ID, DemoUserID)
	}
	if snap.SalonID != DemoSalonID {
		t.Errorf("salon id = %q, want %q", snap.SalonID, DemoSalonID)
	}
	if snap.StylistID != DemoStylistID {
		t.Errorf("stylist id = %q, want %q", snap.StylistID, DemoStylistID)
	}
}

func TestDemoLogin_DoesNotPersist(t *testing.T) {
	store, tokens := newTestStore(t)

	store.DemoLogin(RoleUser)
	if _, err := tokens.Load(context.Background()); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Error("DemoLogin must not write to the token store")
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	store, tokens := newTestStore(t)
	ctx := context.Background()

	user := &User{ID: "u1", Role: RoleSalon}
	if err := store.Login(ctx, Credentials{User: user, Token: "abc123", FirstLogin: true}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	snap := store.Snapshot()
	if snap.Authenticated {
		t.Error("Authenticated = true after Logout")
	}
	if snap.User != nil || snap.Token != "" || snap.Role != "" ||
		snap.SalonID != "" || snap.StylistID != "" || snap.FirstLogin || snap.Demo {
		t.Errorf("session not fully cleared: %+v", snap)
	}

	if _, err := tokens.Load(ctx); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Error("persisted token must be deleted on Logout")
	}
}

func TestRestore_ColdStartWithToken(t *testing.T) {
	store, tokens := newTestStore(t)
	ctx := context.Background()

	if err := tokens.Save(ctx, "abc123"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	token, err := store.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if token != "abc123" {
		t.Errorf("Restore() = %q, want abc123", token)
	}

	snap := store.Snapshot()
	if !snap.Loading {
		t.Error("Loading should be true while the restored token is validated")
	}
	if snap.Authenticated {
		t.Error("Restore alone must not authenticate the session")
	}

	// Profile fetch succeeded; complete the transition.
	user := &User{ID: "u1", Role: RoleUser}
	if err := store.Login(ctx, Credentials{User: user, Token: token}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	snap = store.Snapshot()
	if !snap.Authenticated || snap.Loading {
		t.Errorf("after restore+login: Authenticated = %v, Loading = %v", snap.Authenticated, snap.Loading)
	}
}

func TestRestore_ColdStartWithoutToken(t *testing.T) {
	store, _ := newTestStore(t)

	token, err := store.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if token != "" {
		t.Errorf("Restore() = %q, want empty", token)
	}
	if store.Snapshot().Loading {
		t.Error("Loading should be false when no token is persisted")
	}
}

func TestRestore_RoundTripAfterLogin(t *testing.T) {
	store, tokens := newTestStore(t)
	ctx := context.Background()

	user := &User{ID: "u1", Role: RoleUser}
	if err := store.Login(ctx, Credentials{User: user, Token: "abc123"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Simulate restart with the same storage backend.
	fresh, err := NewStore(Config{Tokens: tokens})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	token, err := fresh.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if token != "abc123" {
		t.Errorf("Restore() = %q, want abc123", token)
	}
}

func TestRestore_AfterLogoutReturnsNone(t *testing.T) {
	store, tokens := newTestStore(t)
	ctx := context.Background()

	user := &User{ID: "u1", Role: RoleUser}
	if err := store.Login(ctx, Credentials{User: user, Token: "abc123"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	fresh, err := NewStore(Config{Tokens: tokens})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	token, err := fresh.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if token != "" {
		t.Errorf("Restore() after Logout = %q, want empty", token)
	}
}

func TestSetUser_RederivesIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := &User{ID: "u1", Role: RoleStylist}
	if err := store.Login(ctx, Credentials{User: user, Token: "t"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Fresh profile arrives with associations resolved.
	store.SetUser(&User{
		ID:      "u1",
		Role:    RoleStylist,
		Salon:   Ref{ID: "salon-3"},
		Stylist: Ref{ID: "stylist-8"},
	})

	snap := store.Snapshot()
	if snap.SalonID != "salon-3" || snap.StylistID != "stylist-8" {
		t.Errorf("derived ids = (%q, %q), want (salon-3, stylist-8)", snap.SalonID, snap.StylistID)
	}
}

func TestSnapshot_Area(t *testing.T) {
	store, _ := newTestStore(t)

	if got := store.Snapshot().Area(); got != AreaAuth {
		t.Errorf("unauthenticated Area() = %q, want %q", got, AreaAuth)
	}

	store.DemoLogin(RoleSalon)
	if got := store.Snapshot().Area(); got != AreaSalon {
		t.Errorf("salon Area() = %q, want %q", got, AreaSalon)
	}
}
