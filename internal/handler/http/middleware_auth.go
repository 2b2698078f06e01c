package http

import (
	"context"
	"net/http"

	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/utils"
)

// auth is an HTTP middleware that enforces access-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, validates it via the token provider, and on success stores the
// authenticated user's ID in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the
// header is absent or malformed, the token fails validation (bad
// signature, wrong issuer or audience, expired), or its identity claims
// are missing.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			h.writeErrorResponse(w, r, http.StatusUnauthorized, CodeAccessTokenIsInvalid, ErrEmptyAuthorizationHeader.Error())
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(ErrInvalidAuthorizationHeader).Send()
			h.writeErrorResponse(w, r, http.StatusUnauthorized, CodeAccessTokenIsInvalid, ErrInvalidAuthorizationHeader.Error())
			return
		}

		if !h.services.TokenProvider.Validate(tokenString) {
			log.Warn().Msg("access token failed validation")
			h.writeErrorResponse(w, r, http.StatusUnauthorized, CodeAccessTokenIsInvalid, "access token is invalid")
			return
		}

		userID, _, err := h.services.TokenProvider.ExtractIdentity(tokenString)
		if err != nil {
			log.Err(err).Msg("identity claims missing from valid token")
			h.writeErrorResponse(w, r, http.StatusUnauthorized, CodeAccessTokenIsInvalid, "access token is invalid")
			return
		}

		// Store the authenticated user's ID in the context so that
		// downstream handlers can retrieve it without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
