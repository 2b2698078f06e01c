package validators

import "github.com/baliestri/calliope/models"

// UserValidator validates the shape of authentication requests before they
// reach the service layer.
//
// All methods return nil on success or a [ValidationErrors] collection
// carrying every violated rule at once.
type UserValidator interface {
	ValidateRegistration(req models.RegisterRequest) error
	ValidateSignIn(req models.SignInRequest) error
	ValidateRenew(accessToken, refreshToken string) error
	ValidateSignOut(refreshToken string) error
}
