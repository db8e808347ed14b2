package service

import (
	"errors"
	"time"
	"winugly/internal/config"
	"winugly/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionService issues and validates anonymous session tokens
type SessionService struct {
	jwtSecret []byte
	ttl       time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(cfg config.SessionConfig) *SessionService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SessionService{
		jwtSecret: []byte(cfg.JWTSecret),
		ttl:       ttl,
	}
}

// Issue creates a new session and its token
func (s *SessionService) Issue() (*model.SessionResponse, error) {
	sessionID := uuid.New().String()
	now := time.Now()

	claims := &model.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.SessionResponse{
		Token:     tokenString,
		SessionID: sessionID,
	}, nil
}

// Validate parses a session token and returns its claims
func (s *SessionService) Validate(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TTL returns how long issued tokens stay valid
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
