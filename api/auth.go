package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/glosshouse/glosshouse-go/session"
)

// AuthService handles credential exchange and profile fetches.
type AuthService struct {
	client *Client
}

// LoginRequest is the credential login payload.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Password string `json:"password"`
}

// CheckMobileRequest asks whether a mobile number has an account.
type CheckMobileRequest struct {
	Mobile string `json:"mobile"`
}

// VerifyOTPRequest is the one-time-password verification payload.
type VerifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// LoginResult is the outcome of a successful credential exchange. It maps
// directly onto session.Credentials.
type LoginResult struct {
	User       *session.User
	Token      string
	Role       session.Role
	FirstLogin bool
}

func (a *AuthService) loginResult(env *Envelope) (*LoginResult, error) {
	var user session.User
	if err := env.Decode(&user); err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, fmt.Errorf("api: auth response missing token")
	}

	role := session.ParseRole(env.Role)
	if role == "" {
		role = user.Role
	}

	// Make the new token visible to the request pipeline now, before the
	// session store's Login transition. The profile fetch that follows a
	// raw login response must already carry it.
	a.client.SetAuthToken(env.Token)

	return &LoginResult{
		User:       &user,
		Token:      env.Token,
		Role:       role,
		FirstLogin: env.FirstLogin,
	}, nil
}

// Login exchanges credentials for a token and profile.
func (a *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	env, err := a.client.post(ctx, "/api/auth/login", req)
	if err != nil {
		return nil, err
	}
	return a.loginResult(env)
}

// CheckMobile reports whether the mobile number is registered. The
// backend sends an OTP to registered numbers as a side effect.
func (a *AuthService) CheckMobile(ctx context.Context, req CheckMobileRequest) (*Envelope, error) {
	return a.client.post(ctx, "/api/auth/check-mobile", req)
}

// VerifyOTP completes an OTP login.
func (a *AuthService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResult, error) {
	env, err := a.client.post(ctx, "/api/auth/verify-otp", req)
	if err != nil {
		return nil, err
	}
	return a.loginResult(env)
}

// GetUserByToken fetches the profile for the current token.
func (a *AuthService) GetUserByToken(ctx context.Context) (*session.User, error) {
	env, err := a.client.get(ctx, "/api/auth/get-user-by-token")
	if err != nil {
		return nil, err
	}
	var user session.User
	if err := env.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchProfile is the authenticated profile fetch every call site should
// use. On an auth-failure response it clears the client token, invokes
// the configured session invalidator, and returns ErrUnauthorized, so no
// call site can forget the invalidation step.
func (a *AuthService) FetchProfile(ctx context.Context) (*session.User, error) {
	user, err := a.GetUserByToken(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			a.client.SetAuthToken("")
			if a.client.invalidate != nil {
				if invErr := a.client.invalidate(ctx); invErr != nil {
					a.client.log.WithError(invErr).Warn("session invalidation failed")
				}
			}
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Logout tells the backend to revoke the token and clears the client
// override. The session store's own Logout handles local state.
func (a *AuthService) Logout(ctx context.Context) error {
	_, err := a.client.post(ctx, "/api/auth/logout", nil)
	a.client.SetAuthToken("")
	return err
}
