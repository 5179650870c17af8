package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func signedToken(t *testing.T, claims *JWTClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestValidateTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signedToken(t, &JWTClaims{
		UserID:   userID,
		UserType: "admin",
		Username: "ops",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "secret")

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != userID || claims.UserType != "admin" {
		t.Fatalf("claims = %+v, want user %s type admin", claims, userID.Hex())
	}
}

func TestValidateTokenRejections(t *testing.T) {
	expired := signedToken(t, &JWTClaims{
		UserID: primitive.NewObjectID(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, "secret")
	fresh := signedToken(t, &JWTClaims{
		UserID: primitive.NewObjectID(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "secret")

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"expired", expired, "secret"},
		{"wrong secret", fresh, "other"},
		{"garbage", "not.a.token", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token, tt.secret); err == nil {
				t.Fatalf("expected rejection")
			}
		})
	}
}
