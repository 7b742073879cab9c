package auth

import (
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken(7, "alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken(1, "bob", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewJWTService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestJWTGarbageToken(t *testing.T) {
	if _, err := NewJWTService("secret").ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("hunter2", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}
