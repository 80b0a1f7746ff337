package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionExpiry is the duration for which sessions are valid.
const SessionExpiry = 7 * 24 * time.Hour

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "session_token"

// SessionClaims represents the claims embedded in a session token.
// The JTI is the session ID used to look up the live session record.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SessionService signs and validates session tokens.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a session service with the given signing secret.
func NewSessionService(secret string) *SessionService {
	return &SessionService{
		secret: []byte(secret),
	}
}

// GenerateSessionToken issues a signed token for a new session.
// The session ID is returned separately for storage in Redis.
func (s *SessionService) GenerateSessionToken(userID uuid.UUID, email string) (sessionID string, token string, err error) {
	sessionID = uuid.New().String()
	claims := &SessionClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return sessionID, token, err
}

// ValidateToken validates a session token and returns its claims.
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
