package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := testManager()
	collegeID := uint(7)

	token, jti, err := m.GenerateAccessToken(TokenSubject{
		UserID:       42,
		Username:     "dean",
		Role:         "COLLEGE_ADMIN",
		CollegeID:    &collegeID,
		TokenVersion: 3,
	})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "dean" {
		t.Errorf("unexpected subject: %d %q", claims.UserID, claims.Username)
	}
	if claims.Role != "COLLEGE_ADMIN" {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.CollegeID == nil || *claims.CollegeID != 7 {
		t.Error("college affiliation not carried in claims")
	}
	if claims.DepartmentID != nil {
		t.Error("department should be absent for a college admin")
	}
	if claims.TokenType != "access" {
		t.Errorf("token type = %q", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("token version = %d", claims.TokenVersion)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := testManager()
	token, _, err := m.GenerateAccessToken(TokenSubject{UserID: 1, Username: "a", Role: "SUPERADMIN"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTManager(JWTConfig{Secret: "different", Expiry: time.Hour, RefreshExpiry: time.Hour, Issuer: "test"})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "test",
	})
	token, _, err := m.GenerateAccessToken(TokenSubject{UserID: 1, Username: "a", Role: "SUPERADMIN"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ValidateToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	m := testManager()
	deptID := uint(9)
	subject := TokenSubject{
		UserID:       5,
		Username:     "chair",
		Role:         "DEPARTMENT_ADMIN",
		DepartmentID: &deptID,
		TokenVersion: 1,
	}

	refresh, _, err := m.GenerateRefreshToken(subject)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	access, _, err := m.RefreshAccessToken(refresh, 1)
	if err != nil {
		t.Fatalf("RefreshAccessToken: %v", err)
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != "access" {
		t.Errorf("token type = %q", claims.TokenType)
	}
	if claims.DepartmentID == nil || *claims.DepartmentID != 9 {
		t.Error("department affiliation not carried through refresh")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	m := testManager()
	access, _, err := m.GenerateAccessToken(TokenSubject{UserID: 1, Username: "a", Role: "SUPERADMIN"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, _, err := m.RefreshAccessToken(access, 0); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
