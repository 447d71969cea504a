package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what a verified token carries: the authenticated user
// and the id of the server-side session row backing the token.
type SessionClaims struct {
	UserID    uint
	Email     string
	SessionID string
}

func GenerateJWT(secret []byte, userID uint, email, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"sid":     sessionID,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func VerifyJWT(secret []byte, tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return nil, fmt.Errorf("invalid user id in token claims")
	}

	email, _ := claims["email"].(string)
	sessionID, ok := claims["sid"].(string)

	if !ok || sessionID == "" {
		return nil, fmt.Errorf("invalid session id in token claims")
	}

	return &SessionClaims{
		UserID:    uint(userIDFloat),
		Email:     email,
		SessionID: sessionID,
	}, nil
}
