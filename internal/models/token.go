package models

import (
	"time"
)

// Signed access token issued by the token manager
// Value is the compact serialized token, signature included
type AccessToken struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
