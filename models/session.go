package models

// Session bundles the freshly issued token pair together with the
// authenticated user. Produced by sign-in and token renewal.
type Session struct {
	User         User
	AccessToken  AccessToken
	RefreshToken RefreshToken
}
