package response

import (
	"apartment-be-svc/internal/billing"
)

// LoginResponse is returned by login and refresh; the refresh token travels in a cookie
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64        `json:"expiresIn" example:"900"`
	User        billing.User `json:"user"`
}
