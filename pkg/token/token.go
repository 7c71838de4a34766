// Package token выпускает и проверяет access-токены сервиса.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenTTL — срок жизни access-токена.
const accessTokenTTL = 30 * time.Minute

// Issue выпускает токен с email пользователя в subject.
func Issue(secret []byte, email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify проверяет подпись и срок действия токена и возвращает email из subject.
func Verify(secret []byte, tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("в токене нет subject")
	}
	return claims.Subject, nil
}
