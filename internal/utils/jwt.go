package utils

import (
	"errors"
	"strconv"
	"time"

	"cardbank/internal/config"
	"cardbank/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateTokens issues an access token and a refresh token for the user.
// The JWT secret comes from the JWT_SECRET environment variable.
func GenerateTokens(user *models.User) (accessToken string, refreshToken string, err error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	for _, tok := range []struct {
		ttl time.Duration
		out *string
	}{
		{accessTokenTTL, &accessToken},
		{refreshTokenTTL, &refreshToken},
	} {
		claims := models.UserClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(tok.ttl)),
				IssuedAt:  jwt.NewNumericDate(now),
				Issuer:    "cardbank-api",
				Subject:   strconv.FormatUint(uint64(user.ID), 10),
			},
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		*tok.out, err = token.SignedString([]byte(secret))
		if err != nil {
			return "", "", err
		}
	}
	return accessToken, refreshToken, nil
}

// ParseToken parses and validates a JWT token string.
func ParseToken(tokenStr string) (*models.UserClaims, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
