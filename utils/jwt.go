package utils

import (
	"errors"
	"time"

	"winetrail/config"
	"winetrail/models"

	"github.com/golang-jwt/jwt"
)

const fallbackSecret = "winetrail-dev-secret"

func secretKey() []byte {
	if config.AppConfig.JWTSecret == "" {
		return []byte(fallbackSecret)
	}
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT carrying the subject and its role.
func GenerateToken(subject string, role models.Role, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParseCaller resolves a token into the caller's id and role.
// A token without a role claim is treated as a plain user.
func ParseCaller(tokenString string) (models.Caller, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Caller{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Caller{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Caller{}, errors.New("token does not contain a valid 'sub' claim")
	}

	role := models.RoleUser
	if r, ok := claims["role"].(string); ok && r != "" {
		role = models.Role(r)
	}
	return models.Caller{UserID: sub, Role: role}, nil
}
