package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"themeweek/config"

	"github.com/golang-jwt/jwt"
)

func jwtSecret() []byte {
	return []byte(config.AppConfig.AuthJWTSecret)
}

// SessionClaims are the claims consumed from a hosted-auth access token.
type SessionClaims struct {
	UserID string
	Email  string
	Expiry time.Time
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
}

// ExtractSessionClaims validates an access token issued by the auth service
// and returns the subject, email and expiry carried in it.
func ExtractSessionClaims(tokenString string) (*SessionClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	sc := &SessionClaims{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		sc.Email = email
	}
	if exp, ok := claims["exp"].(float64); ok {
		sc.Expiry = time.Unix(int64(exp), 0)
	}
	return sc, nil
}

// GenerateSessionToken creates a signed HS256 token with the given subject and
// email, expiring after the specified duration. Used by tests and the local
// development auth stub; production tokens come from the hosted auth service.
func GenerateSessionToken(subject, email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}
