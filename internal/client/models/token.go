// Package models defines the client-side data models: the session token
// pair and the display projections of API records.
package models

// TokenPair is the credential pair returned by POST /auth/login. A pair is
// only meaningful when both tokens are present.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are set.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
