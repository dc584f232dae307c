// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package auth resolves the calling tenant from bearer tokens. Tokens are
// HMAC-signed JWTs minted by the account service; Rollcall only verifies
// them and extracts the company claim.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation errors.
var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrNoCompany    = errors.New("auth: token carries no company_id claim")
)

// Claims is the verified token payload Rollcall cares about.
type Claims struct {
	CompanyID string `json:"company_id"`
	Subject   string `json:"sub,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HMAC-signed bearer tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the shared signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates token, returning its claims. Only HMAC
// signing methods are accepted.
func (v *Verifier) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.CompanyID == "" {
		return nil, ErrNoCompany
	}
	return claims, nil
}

// Mint creates a signed token for companyID, used by tests and the
// provisioning CLI.
func (v *Verifier) Mint(companyID, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		CompanyID: companyID,
		Subject:   subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
