package auth

import "fmt"

// Credentials identify an administrator for a single login call.
// They are never persisted.
type Credentials struct {
	// LoginID is the administrator e-mail.
	LoginID string `json:"loginId"`
	// Password is the administrator password.
	Password string `json:"password"`
}

// String hides the password so credentials can be logged safely.
func (c Credentials) String() string {
	return fmt.Sprintf("%s:***", c.LoginID)
}

// TokenPair is returned by a successful login.
// Only AccessToken is stored; the refresh token is not used by this console.
type TokenPair struct {
	// AccessToken authorizes subsequent requests as a bearer credential.
	AccessToken string `json:"accessToken"`
	// RefreshToken is received but discarded.
	RefreshToken string `json:"refreshToken"`
}
