package validators

import (
	"fmt"
	"net/mail"
	"regexp"
	"unicode"

	"github.com/baliestri/calliope/models"
)

// Field name constants used in validation failure payloads.
const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldIdentifier   = "identifier"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
)

// PasswordMinLength is the minimum accepted password length at
// registration time.
const PasswordMinLength = 12

// usernameRe matches the accepted username alphabet: ASCII letters and
// digits only.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// userValidator is the concrete implementation of [UserValidator].
type userValidator struct {
}

// NewUserValidator constructs a [UserValidator] for authentication
// requests.
func NewUserValidator() UserValidator {
	return &userValidator{}
}

// ValidateRegistration checks every registration field and collects all
// violations:
//   - first name 2 to 20 characters;
//   - last name 2 to 30 characters;
//   - username 3 to 15 alphanumeric characters;
//   - syntactically valid e-mail address;
//   - password of at least 12 characters containing a lower-case letter,
//     an upper-case letter, a digit and a symbol.
func (v *userValidator) ValidateRegistration(req models.RegisterRequest) error {
	var errs ValidationErrors

	errs = appendLengthError(errs, FieldFirstName, req.FirstName, models.FirstNameMinLength, models.FirstNameMaxLength)
	errs = appendLengthError(errs, FieldLastName, req.LastName, models.LastNameMinLength, models.LastNameMaxLength)

	switch {
	case len(req.Username) < models.UsernameMinLength || len(req.Username) > models.UsernameMaxLength:
		errs = append(errs, models.FieldError{
			Field:   FieldUsername,
			Message: fmt.Sprintf("must be between %d and %d characters", models.UsernameMinLength, models.UsernameMaxLength),
		})
	case !usernameRe.MatchString(req.Username):
		errs = append(errs, models.FieldError{Field: FieldUsername, Message: "must contain only letters and digits"})
	}

	if _, err := mail.ParseAddress(req.Email); req.Email == "" || err != nil {
		errs = append(errs, models.FieldError{Field: FieldEmail, Message: "must be a valid e-mail address"})
	}

	errs = appendPasswordErrors(errs, req.Password)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateSignIn only requires both fields to be present. Format rules are
// deliberately not applied here: a malformed credential must surface as
// invalid-credentials downstream, not as a validation failure that reveals
// which rule a stored password would satisfy.
func (v *userValidator) ValidateSignIn(req models.SignInRequest) error {
	var errs ValidationErrors

	if req.Identifier == "" {
		errs = append(errs, models.FieldError{Field: FieldIdentifier, Message: "must not be empty"})
	}
	if req.Password == "" {
		errs = append(errs, models.FieldError{Field: FieldPassword, Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateRenew requires both the access and the refresh token to be
// present.
func (v *userValidator) ValidateRenew(accessToken, refreshToken string) error {
	var errs ValidationErrors

	if accessToken == "" {
		errs = append(errs, models.FieldError{Field: FieldAccessToken, Message: "must not be empty"})
	}
	if refreshToken == "" {
		errs = append(errs, models.FieldError{Field: FieldRefreshToken, Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateSignOut requires the refresh token to be present.
func (v *userValidator) ValidateSignOut(refreshToken string) error {
	if refreshToken == "" {
		return ValidationErrors{{Field: FieldRefreshToken, Message: "must not be empty"}}
	}
	return nil
}

func appendLengthError(errs ValidationErrors, field, value string, minLen, maxLen int) ValidationErrors {
	if len(value) < minLen || len(value) > maxLen {
		errs = append(errs, models.FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d characters", minLen, maxLen),
		})
	}
	return errs
}

func appendPasswordErrors(errs ValidationErrors, password string) ValidationErrors {
	if len(password) < PasswordMinLength {
		return append(errs, models.FieldError{
			Field:   FieldPassword,
			Message: fmt.Sprintf("must be at least %d characters", PasswordMinLength),
		})
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		errs = append(errs, models.FieldError{
			Field:   FieldPassword,
			Message: "must contain a lower-case letter, an upper-case letter, a digit and a symbol",
		})
	}
	return errs
}
