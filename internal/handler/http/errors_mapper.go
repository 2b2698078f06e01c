package http

import (
	"errors"
	"net/http"

	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/service"
	"github.com/baliestri/calliope/internal/utils"
	"github.com/baliestri/calliope/internal/validators"
	"github.com/baliestri/calliope/models"
)

// Stable machine-readable error codes carried in every failure payload.
const (
	CodeValidationFailed      = "ERR_VALIDATION_FAILED"
	CodeMalformedJSON         = "ERR_MALFORMED_JSON"
	CodeEmailAlreadyInUse     = "ERR_EMAIL_ALREADY_IN_USE"
	CodeUsernameAlreadyInUse  = "ERR_USERNAME_ALREADY_IN_USE"
	CodeInvalidCredentials    = "ERR_INVALID_CREDENTIALS"
	CodeRefreshTokenIsInvalid = "ERR_REFRESH_TOKEN_IS_INVALID"
	CodeAccessTokenIsInvalid  = "ERR_ACCESS_TOKEN_IS_INVALID"
	CodeCouldNotRegister      = "ERR_COULD_NOT_REGISTER"
	CodeCouldNotSignIn        = "ERR_COULD_NOT_SIGN_IN"
	CodeCouldNotRenewTokens   = "ERR_COULD_NOT_RENEW_TOKENS"
	CodeCouldNotRevokeTokens  = "ERR_COULD_NOT_REVOKE_TOKENS"
	CodeCouldNotDeleteUser    = "ERR_COULD_NOT_DELETE_USER"
	CodeInternal              = "ERR_INTERNAL"
)

type errorMapping struct {
	status  int
	code    string
	message string
}

// errorMappings resolves service-layer sentinels onto transport status
// codes and payload codes. Expired and unknown refresh tokens share one
// code on purpose: the response must not reveal whether a presented token
// ever existed.
var errorMappings = map[error]errorMapping{
	service.ErrEmailAlreadyInUse:    {http.StatusConflict, CodeEmailAlreadyInUse, "email is already in use"},
	service.ErrUsernameAlreadyInUse: {http.StatusConflict, CodeUsernameAlreadyInUse, "username is already in use"},
	service.ErrInvalidCredentials:   {http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials"},
	service.ErrRefreshTokenInvalid:  {http.StatusUnauthorized, CodeRefreshTokenIsInvalid, "refresh token is invalid"},
	service.ErrRefreshTokenExpired:  {http.StatusUnauthorized, CodeRefreshTokenIsInvalid, "refresh token is invalid"},
	service.ErrAccessTokenInvalid:   {http.StatusUnauthorized, CodeAccessTokenIsInvalid, "access token is invalid"},
	service.ErrUserNotFound:         {http.StatusUnauthorized, CodeAccessTokenIsInvalid, "access token is invalid"},
	service.ErrCouldNotRegister:     {http.StatusInternalServerError, CodeCouldNotRegister, "could not register user"},
	service.ErrCouldNotSignIn:       {http.StatusInternalServerError, CodeCouldNotSignIn, "could not sign in user"},
	service.ErrCouldNotRenewTokens:  {http.StatusInternalServerError, CodeCouldNotRenewTokens, "could not renew tokens"},
	service.ErrCouldNotRevokeTokens: {http.StatusInternalServerError, CodeCouldNotRevokeTokens, "could not revoke tokens"},
	service.ErrCouldNotDeleteUser:   {http.StatusInternalServerError, CodeCouldNotDeleteUser, "could not delete user"},
}

// writeError resolves err onto its transport representation and writes the
// JSON failure payload. Unrecognised errors collapse to a generic 500 so
// internal details never leak to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validators.ValidationErrors
	if errors.As(err, &verrs) {
		h.writeValidationError(w, r, verrs)
		return
	}

	for target, mapping := range errorMappings {
		if errors.Is(err, target) {
			h.writeErrorResponse(w, r, mapping.status, mapping.code, mapping.message)
			return
		}
	}

	logger.FromRequest(r).Err(err).Msg("unmapped error reached the transport layer")
	h.writeErrorResponse(w, r, http.StatusInternalServerError, CodeInternal, http.StatusText(http.StatusInternalServerError))
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Code: code, Message: message}, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}

// writeValidationError writes the collected field violations with 422.
func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, verrs validators.ValidationErrors) {
	payload := models.ValidationProblem{
		Code:   CodeValidationFailed,
		Errors: verrs.Fields(),
	}
	if _, err := utils.WriteJSON(w, payload, http.StatusUnprocessableEntity); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing validation response")
	}
}
