package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baliestri/calliope/internal/service"
	"github.com/baliestri/calliope/models"
)

// Requests are routed through the full chi router so the auth middleware
// runs exactly as it would in production.

func TestAuthMiddleware_ValidToken(t *testing.T) {
	auth := &mockAuthSessionService{
		profileFn: func(_ context.Context, userID string) (models.User, error) {
			assert.Equal(t, "user-1", userID)
			return models.User{
				UserID:    "user-1",
				FirstName: "Jane",
				LastName:  "Doe",
				Username:  "jdoe",
				Email:     "jane@x.com",
			}, nil
		},
	}
	tokens := &mockTokenProvider{
		validateFn: func(tokenString string) bool { return tokenString == "valid.jwt.token" },
		extractFn:  func(_ string) (string, string, error) { return "user-1", "jdoe", nil },
	}
	h := newTestHandler(t, &service.Services{AuthSessionService: auth, TokenProvider: tokens})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProfileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "jdoe", resp.Username)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		validate   func(string) bool
		extract    func(string) (string, string, error)
	}{
		{
			name: "missing header",
		},
		{
			name:       "not a bearer scheme",
			authHeader: "Basic dXNlcjpwYXNz",
		},
		{
			name:       "failed validation",
			authHeader: "Bearer tampered.jwt.token",
			validate:   func(string) bool { return false },
		},
		{
			name:       "missing identity claims",
			authHeader: "Bearer valid.jwt.token",
			validate:   func(string) bool { return true },
			extract:    func(string) (string, string, error) { return "", "", service.ErrAccessTokenInvalid },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mockTokenProvider{validateFn: tt.validate, extractFn: tt.extract}
			h := newTestHandler(t, &service.Services{
				AuthSessionService: &mockAuthSessionService{},
				TokenProvider:      tokens,
			})
			router := h.Init()

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, CodeAccessTokenIsInvalid, decodeError(t, rec).Code)
		})
	}
}

// A deleted or vanished user must look identical to a bad token.
func TestAuthMiddleware_ProfileOfDeletedUser(t *testing.T) {
	auth := &mockAuthSessionService{
		profileFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, service.ErrUserNotFound
		},
	}
	tokens := &mockTokenProvider{
		validateFn: func(string) bool { return true },
		extractFn:  func(string) (string, string, error) { return "user-gone", "ghost", nil },
	}
	h := newTestHandler(t, &service.Services{AuthSessionService: auth, TokenProvider: tokens})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeAccessTokenIsInvalid, decodeError(t, rec).Code)
}

func TestDeleteAccountHandler_Success(t *testing.T) {
	auth := &mockAuthSessionService{
		deleteAccountFn: func(_ context.Context, userID string) error {
			assert.Equal(t, "user-1", userID)
			return nil
		},
	}
	tokens := &mockTokenProvider{
		validateFn: func(string) bool { return true },
		extractFn:  func(string) (string, string, error) { return "user-1", "jdoe", nil },
	}
	h := newTestHandler(t, &service.Services{AuthSessionService: auth, TokenProvider: tokens})
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, deletedAccountMessage, resp.Message)
}

func TestDeleteAccountHandler_AlreadyDeleted(t *testing.T) {
	auth := &mockAuthSessionService{
		deleteAccountFn: func(_ context.Context, _ string) error {
			return service.ErrUserNotFound
		},
	}
	tokens := &mockTokenProvider{
		validateFn: func(string) bool { return true },
		extractFn:  func(string) (string, string, error) { return "user-gone", "ghost", nil },
	}
	h := newTestHandler(t, &service.Services{AuthSessionService: auth, TokenProvider: tokens})
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeAccessTokenIsInvalid, decodeError(t, rec).Code)
}

func TestTraceIDMiddleware_EchoesIncomingHeader(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthSessionService:  &mockAuthSessionService{},
		RegistrationService: &mockRegistrationService{},
		TokenProvider:       &mockTokenProvider{},
	})
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}

func TestTraceIDMiddleware_GeneratesWhenAbsent(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthSessionService:  &mockAuthSessionService{},
		RegistrationService: &mockRegistrationService{},
		TokenProvider:       &mockTokenProvider{},
	})
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}
