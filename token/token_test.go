package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret")

	// Test case 1: Round trip
	t.Run("Round trip", func(t *testing.T) {
		signed, err := svc.Issue("a@x.com")
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}

		email, err := svc.Verify(signed)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if email != "a@x.com" {
			t.Errorf("Verify returned wrong email: got %v want %v", email, "a@x.com")
		}
	})

	// Test case 2: Token has three segments and an expiry claim
	t.Run("Token shape", func(t *testing.T) {
		signed, _ := svc.Issue("a@x.com")

		parts := strings.Split(signed, ".")
		if len(parts) != 3 {
			t.Fatalf("Expected 3 token segments, got %d", len(parts))
		}

		parsed, _ := jwt.ParseWithClaims(signed, &Claims{}, func(tk *jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		claims := parsed.Claims.(*Claims)
		if claims.ExpiresAt == nil {
			t.Fatal("Expected an expiry claim")
		}
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > TTL || ttl < TTL-time.Minute {
			t.Errorf("Expected expiry about %v from now, got %v", TTL, ttl)
		}
	})

	// Test case 3: Expired token
	t.Run("Expired token", func(t *testing.T) {
		claims := Claims{
			Email: "a@x.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)

		if _, err := svc.Verify(signed); !errors.Is(err, ErrExpiredToken) {
			t.Errorf("Expected ErrExpiredToken, got %v", err)
		}
	})

	// Test case 4: Tampered signature
	t.Run("Tampered signature", func(t *testing.T) {
		signed, _ := svc.Issue("a@x.com")
		parts := strings.Split(signed, ".")
		tampered := parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-1] + "X"

		if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	// Test case 5: Token signed with a different secret
	t.Run("Wrong secret", func(t *testing.T) {
		other := NewService("other-secret")
		signed, _ := other.Issue("a@x.com")

		if _, err := svc.Verify(signed); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	// Test case 6: Garbage input
	t.Run("Garbage input", func(t *testing.T) {
		if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	// Test case 7: Missing email claim
	t.Run("Missing email claim", func(t *testing.T) {
		claims := Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)

		if _, err := svc.Verify(signed); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
