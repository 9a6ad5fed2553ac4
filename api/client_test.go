package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glosshouse/glosshouse-go/session"
)

func okEnvelope(data any) []byte {
	body, _ := json.Marshal(map[string]any{
		"status": true,
		"data":   data,
	})
	return body
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() with empty BaseURL should fail")
	}
	if _, err := New(Config{BaseURL: "not a url"}); err == nil {
		t.Error("New() with invalid BaseURL should fail")
	}
}

func TestClient_AttachesTokenHeader(t *testing.T) {
	var gotToken, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(TokenHeader)
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write(okEnvelope(map[string]string{}))
	}))
	defer server.Close()

	client, err := New(Config{
		BaseURL:     server.URL,
		TokenSource: func() string { return "abc123" },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := client.get(context.Background(), "/api/auth/get-user-by-token"); err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if gotToken != "abc123" {
		t.Errorf("token header = %q, want abc123", gotToken)
	}
	if gotRequestID == "" {
		t.Error("request id header missing")
	}
}

func TestClient_NoTokenHeaderWhenUnauthenticated(t *testing.T) {
	var hasHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasHeader = r.Header[http.CanonicalHeaderKey(TokenHeader)]
		w.Write(okEnvelope(map[string]string{}))
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := client.get(context.Background(), "/api/salon/get-salons"); err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if hasHeader {
		t.Error("token header must be absent when no token is available")
	}
}

func TestClient_SetAuthTokenOverridesSource(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(TokenHeader)
		w.Write(okEnvelope(map[string]string{}))
	}))
	defer server.Close()

	// The source simulates a session store that has not yet completed its
	// login transition.
	client, err := New(Config{
		BaseURL:     server.URL,
		TokenSource: func() string { return "" },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	client.SetAuthToken("fresh-token")
	if _, err := client.get(context.Background(), "/api/auth/get-user-by-token"); err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if gotToken != "fresh-token" {
		t.Errorf("token header = %q, want fresh-token", gotToken)
	}

	client.SetAuthToken("")
	if _, err := client.get(context.Background(), "/api/auth/get-user-by-token"); err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if gotToken != "" {
		t.Errorf("token header after clear = %q, want empty", gotToken)
	}
}

func TestClient_StatusFalseIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "salon not found"})
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.get(context.Background(), "/api/salon/get-salon-by-id")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Message != "salon not found" {
		t.Errorf("message = %q, want %q", apiErr.Message, "salon not found")
	}
}

func TestClient_UnauthorizedUnwraps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "invalid token"})
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.get(context.Background(), "/api/auth/get-user-by-token")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestAuth_LoginSetsTokenForFollowupCalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":       true,
			"message":      "ok",
			"token":        "t-new",
			"role":         "salon",
			"isFirstLogin": true,
			"data":         map[string]any{"_id": "owner-1", "name": "Ada", "role": "salon"},
		})
	})
	var profileToken string
	mux.HandleFunc("/api/auth/get-user-by-token", func(w http.ResponseWriter, r *http.Request) {
		profileToken = r.Header.Get(TokenHeader)
		w.Write(okEnvelope(map[string]any{"_id": "owner-1", "role": "salon"}))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := client.Auth().Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token != "t-new" || result.Role != session.RoleSalon || !result.FirstLogin {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.User == nil || result.User.ID != "owner-1" {
		t.Errorf("user not decoded: %+v", result.User)
	}

	// The profile fetch that follows must already carry the new token,
	// before any session store transition.
	if _, err := client.Auth().GetUserByToken(context.Background()); err != nil {
		t.Fatalf("GetUserByToken() error = %v", err)
	}
	if profileToken != "t-new" {
		t.Errorf("profile fetch token = %q, want t-new", profileToken)
	}
}

func TestAuth_FetchProfileInvalidatesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "expired"})
	}))
	defer server.Close()

	invalidated := false
	client, err := New(Config{
		BaseURL: server.URL,
		OnSessionInvalid: func(ctx context.Context) error {
			invalidated = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Auth().FetchProfile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if !invalidated {
		t.Error("session invalidator was not called")
	}
}

func TestCoupons_EmptyCodeRejectedLocally(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := client.Coupons().Apply(context.Background(), ApplyCouponRequest{Code: "  "}); err == nil {
		t.Error("Apply() with empty code should fail")
	}
	if called {
		t.Error("no network round-trip should occur for an empty code")
	}
}

func TestAvailability_ByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/appointment/get-available-appointment-by-date" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write(okEnvelope([]string{"10:00", "10:30"}))
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	env, err := client.Availability().ByDate(context.Background(), AvailabilityRequest{
		SalonID: "salon-1",
		Date:    "2026-09-01",
	})
	if err != nil {
		t.Fatalf("ByDate() error = %v", err)
	}

	var slots []string
	if err := env.Decode(&slots); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(slots) != 2 || slots[0] != "10:00" {
		t.Errorf("slots = %v", slots)
	}
}
