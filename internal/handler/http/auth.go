package http

import (
	"encoding/json"
	"net/http"

	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/utils"
	"github.com/baliestri/calliope/models"
)

// signedOutMessage is the success payload of the sign-out endpoint.
const signedOutMessage = "User successfully signed out."

// deletedAccountMessage is the success payload of the account-deletion
// endpoint.
const deletedAccountMessage = "User successfully deleted."

// register handles POST /api/auth/register. On success the new account's
// identifier is returned with 201.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeErrorResponse(w, r, http.StatusBadRequest, CodeMalformedJSON, "invalid JSON was passed")
		return
	}

	if err := h.validator.ValidateRegistration(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.RegistrationService.Register(ctx, req)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		h.writeError(w, r, err)
		return
	}

	if _, err := utils.WriteJSON(w, models.RegisterResponse{UserID: user.UserID}, http.StatusCreated); err != nil {
		log.Err(err).Msg("error writing registration response")
	}
}

// signIn handles POST /api/auth/sign-in. A successful sign-in replaces any
// previous session of the user and returns a fresh token pair.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeErrorResponse(w, r, http.StatusBadRequest, CodeMalformedJSON, "invalid JSON was passed")
		return
	}

	if err := h.validator.ValidateSignIn(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.services.AuthSessionService.SignIn(ctx, req)
	if err != nil {
		log.Err(err).Msg("sign-in failed")
		h.writeError(w, r, err)
		return
	}

	h.writeSession(w, r, session)
}

// renew handles GET /api/auth/renew. The expired (or still valid) access
// token rides in the "Authorization" header and the opaque refresh token
// in the "RefreshToken" header; on success both are rotated.
func (h *Handler) renew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accessToken, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(err).Msg("bearer token missing on renew")
		accessToken = ""
	}
	refreshToken := r.Header.Get(refreshTokenHeader)
	if refreshToken == "" {
		log.Err(ErrEmptyRefreshTokenHeader).Send()
	}

	if err := h.validator.ValidateRenew(accessToken, refreshToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.services.AuthSessionService.Renew(ctx, accessToken, refreshToken)
	if err != nil {
		log.Err(err).Msg("token renewal failed")
		h.writeError(w, r, err)
		return
	}

	h.writeSession(w, r, session)
}

// signOut handles POST /api/auth/sign-out, revoking the session that holds
// the presented refresh token.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeErrorResponse(w, r, http.StatusBadRequest, CodeMalformedJSON, "invalid JSON was passed")
		return
	}

	if err := h.validator.ValidateSignOut(req.RefreshToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthSessionService.SignOut(ctx, req.RefreshToken); err != nil {
		log.Err(err).Msg("sign-out failed")
		h.writeError(w, r, err)
		return
	}

	if _, err := utils.WriteJSON(w, models.MessageResponse{Message: signedOutMessage}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing sign-out response")
	}
}

// me handles GET /api/auth/me for an authenticated caller.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.writeErrorResponse(w, r, http.StatusUnauthorized, CodeAccessTokenIsInvalid, "access token is invalid")
		return
	}

	user, err := h.services.AuthSessionService.Profile(ctx, userID)
	if err != nil {
		log.Err(err).Msg("profile lookup failed")
		h.writeError(w, r, err)
		return
	}

	profile := models.ProfileResponse{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
	}
	if _, err := utils.WriteJSON(w, profile, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing profile response")
	}
}

// deleteMe handles DELETE /api/auth/me, soft-deleting the authenticated
// caller's account and revoking its session.
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.writeErrorResponse(w, r, http.StatusUnauthorized, CodeAccessTokenIsInvalid, "access token is invalid")
		return
	}

	if err := h.services.AuthSessionService.DeleteAccount(ctx, userID); err != nil {
		log.Err(err).Msg("account deletion failed")
		h.writeError(w, r, err)
		return
	}

	if _, err := utils.WriteJSON(w, models.MessageResponse{Message: deletedAccountMessage}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing account deletion response")
	}
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, session models.Session) {
	payload := models.SessionResponse{
		UserID:                session.User.UserID,
		AccessToken:           session.AccessToken.Value,
		AccessTokenExpiresAt:  session.AccessToken.ExpiresAt,
		RefreshToken:          session.RefreshToken.Value,
		RefreshTokenExpiresAt: session.RefreshToken.ExpiresAt,
	}
	if _, err := utils.WriteJSON(w, payload, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing session response")
	}
}
