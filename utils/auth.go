package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key
var JwtKey = []byte("") // loaded from ACCESS_TOKEN at startup

// TokenTTL bounds issued tokens. Zero issues tokens without an expiry.
var TokenTTL time.Duration

// ErrInvalidToken is returned for tokens that fail signature, algorithm or expiry checks
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims. Only the identity is carried; roles are always read from the database.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GenerateJWT generates a JWT token bound to email
func GenerateJWT(email string) (string, error) {
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt: time.Now().Unix(),
		},
	}
	if TokenTTL > 0 {
		claims.ExpiresAt = time.Now().Add(TokenTTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseJWT verifies tokenStr against JwtKey and returns its claims
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return JwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
