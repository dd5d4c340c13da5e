package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"gradhub_backend/internals/configs"
	userModel "gradhub_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CreateAccessToken issues the bearer token carried by every API call.
func CreateAccessToken(user *userModel.UserModel) (string, error) {
	return createToken(user, configs.JWTSecret, AccessTokenTTL)
}

func CreateRefreshToken(user *userModel.UserModel) (string, error) {
	return createToken(user, configs.JWTRefreshSecret, RefreshTokenTTL)
}

func createToken(user *userModel.UserModel, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"user_name": user.UserFullName,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRefreshToken verifies a refresh token and returns its claims.
func ParseRefreshToken(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
