package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are JWT claims for an anonymous coaching session
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// SessionResponse is returned when a session token is issued
type SessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}
