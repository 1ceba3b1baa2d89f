package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/folkcanvas/folk/backend-go/internal/typeid"
)

var ErrInvalidKey = errors.New("invalid relay key")

// Service issues and validates tokens gating relay connections. Access is
// granted by presenting the shared relay key, checked against a bcrypt hash
// from configuration; an empty hash leaves the relay open (dev mode).
type Service struct {
	jwtSecret    []byte
	relayKeyHash []byte
}

func NewService(jwtSecret, relayKeyHash string) *Service {
	return &Service{
		jwtSecret:    []byte(jwtSecret),
		relayKeyHash: []byte(relayKeyHash),
	}
}

type AuthResult struct {
	Token    string `json:"token"`
	ClientID string `json:"clientId"`
}

// Authorize checks the relay key and issues a token bound to a fresh
// client ID.
func (s *Service) Authorize(key string) (*AuthResult, error) {
	if len(s.relayKeyHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(s.relayKeyHash, []byte(key)); err != nil {
			return nil, ErrInvalidKey
		}
	}

	clientID := typeid.NewClientID()
	token, err := s.issueToken(clientID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, ClientID: clientID}, nil
}

// ValidateToken returns the client ID a token was issued for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	clientID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid token subject")
	}

	return clientID, nil
}

func (s *Service) issueToken(clientID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": clientID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
