package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndDecodeJWTPair(t *testing.T) {
	accessSecret := []byte("access-secret")
	refreshSecret := []byte("refresh-secret")

	pair, err := GenerateJWTPair(GenerateJWTPairDto{
		Method: jwt.SigningMethodHS256,
		AccessSecret: accessSecret,
		AccessClaims: jwt.MapClaims{"id": "abc"},
		AccessExpiry: time.Hour,
		RefreshSecret: refreshSecret,
		RefreshClaims: jwt.MapClaims{"id": "abc"},
		RefreshExpiry: time.Hour * 24,
	})
	if err != nil {
		t.Fatalf("GenerateJWTPair: %v", err)
	}

	claims, err := DecodeJWT(pair.AccessToken, accessSecret)
	if err != nil {
		t.Fatalf("DecodeJWT access: %v", err)
	}
	if claims["id"] != "abc" {
		t.Errorf(`claims["id"] = %v, want "abc"`, claims["id"])
	}

	if _, err := DecodeJWT(pair.RefreshToken, refreshSecret); err != nil {
		t.Fatalf("DecodeJWT refresh: %v", err)
	}
}

func TestDecodeJWTWrongSecret(t *testing.T) {
	pair, err := GenerateJWTPair(GenerateJWTPairDto{
		Method: jwt.SigningMethodHS256,
		AccessSecret: []byte("right"),
		AccessClaims: jwt.MapClaims{"id": "abc"},
		AccessExpiry: time.Hour,
		RefreshSecret: []byte("right"),
		RefreshClaims: jwt.MapClaims{"id": "abc"},
		RefreshExpiry: time.Hour,
	})
	if err != nil {
		t.Fatalf("GenerateJWTPair: %v", err)
	}

	if _, err := DecodeJWT(pair.AccessToken, []byte("wrong")); err == nil {
		t.Fatal("DecodeJWT with wrong secret succeeded")
	}
}

func TestDecodeJWTExpired(t *testing.T) {
	pair, err := GenerateJWTPair(GenerateJWTPairDto{
		Method: jwt.SigningMethodHS256,
		AccessSecret: []byte("secret"),
		AccessClaims: jwt.MapClaims{"id": "abc"},
		AccessExpiry: -time.Hour,
		RefreshSecret: []byte("secret"),
		RefreshClaims: jwt.MapClaims{"id": "abc"},
		RefreshExpiry: -time.Hour,
	})
	if err != nil {
		t.Fatalf("GenerateJWTPair: %v", err)
	}

	if _, err := DecodeJWT(pair.AccessToken, []byte("secret")); err == nil {
		t.Fatal("DecodeJWT of expired token succeeded")
	}
}
