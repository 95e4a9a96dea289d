package entity

import "github.com/google/uuid"

// AccessClaims holds the verified identity carried by an access token.
type AccessClaims struct {
	UserID uuid.UUID
	Tier   Tier
}
