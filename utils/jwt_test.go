package utils

import (
	"testing"

	"github.com/dinu12141/CMMS-MADAMPE/config"
)

func TestJWTRoundTrip(t *testing.T) {
	config.LoadConfig()

	token, err := GenerateJWT("user-1", "maint.super", "Supervisor")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "maint.super" || claims.Role != "Supervisor" {
		t.Errorf("claims do not match: %+v", claims)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	config.LoadConfig()

	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPasswordHash("s3cret!", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
