package auth

import (
	"context"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	a := New("test-secret")

	signed, err := a.GenerateToken(42, RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := a.ValidateToken(signed)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserId != 42 {
		t.Errorf("UserId = %d, want 42", claims.UserId)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, RoleAdmin)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := New("secret-a").GenerateToken(1, RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := New("secret-b").ValidateToken(signed); err == nil {
		t.Fatal("expected error validating token signed with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Parallel()

	if _, err := New("test-secret").ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error validating garbage token")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	a := New("test-secret")

	signed, tokenID, err := a.GenerateRefreshToken(7, RoleUser)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a non-empty token id")
	}

	claims, err := a.ValidateRefreshToken(signed)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.UserId != 7 {
		t.Errorf("UserId = %d, want 7", claims.UserId)
	}
	if claims.Role != RoleUser {
		t.Errorf("Role = %q, want %q", claims.Role, RoleUser)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestRefreshTokenIDsUnique(t *testing.T) {
	t.Parallel()

	a := New("test-secret")

	_, first, err := a.GenerateRefreshToken(1, RoleUser)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	_, second, err := a.GenerateRefreshToken(1, RoleUser)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct token ids for consecutive refresh tokens")
	}
}

func TestAuthorized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		role  string
		roles []string
		want  bool
	}{
		{"admin allowed", RoleAdmin, []string{RoleAdmin}, true},
		{"user denied admin route", RoleUser, []string{RoleAdmin}, false},
		{"any of several", RoleUser, []string{RoleAdmin, RoleUser}, true},
		{"no roles required", RoleUser, nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Claims{Role: tt.role}
			if got := c.Authorized(tt.roles...); got != tt.want {
				t.Errorf("Authorized(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestGetClaims(t *testing.T) {
	t.Parallel()

	want := Claims{UserId: 3, Role: RoleUser}
	ctx := context.WithValue(context.Background(), Key, want)

	got, err := GetClaims(ctx)
	if err != nil {
		t.Fatalf("GetClaims: %v", err)
	}
	if got.UserId != want.UserId || got.Role != want.Role {
		t.Errorf("GetClaims = %+v, want %+v", got, want)
	}

	if _, err := GetClaims(context.Background()); err == nil {
		t.Fatal("expected error when claims are missing from the context")
	}
}
