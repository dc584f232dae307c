// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestVerify_RoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Mint("acme", "operator-1", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := v.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.CompanyID != "acme" {
		t.Errorf("expected company acme, got %s", claims.CompanyID)
	}
	if claims.Subject != "operator-1" {
		t.Errorf("expected subject operator-1, got %s", claims.Subject)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewVerifier("secret-a").Mint("acme", "", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := NewVerifier("secret-b").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	v := NewVerifier("test-secret")
	token, err := v.Mint("acme", "", -time.Minute)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_MissingCompanyClaim(t *testing.T) {
	secret := []byte("test-secret")
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := raw.SignedString(secret)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := NewVerifier("test-secret").Verify(token); !errors.Is(err, ErrNoCompany) {
		t.Errorf("expected ErrNoCompany, got %v", err)
	}
}

func TestVerify_RejectsUnsignedToken(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"company_id": "acme"})
	token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := NewVerifier("test-secret").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := NewVerifier("test-secret").Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
