// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a verified access token.
//
// Tokens are issued by the identity provider; this service only verifies
// them. The subject claim carries the user id and the "app_role" claim the
// product role.
type Token struct {
	// Token is the parsed JWT. Never serialized.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// AppRole is the product role claim.
	AppRole Role `json:"app_role"`

	// SignedString is the compact JWS form of the token.
	SignedString string `json:"-"`

	// UserID is a cached copy of the subject claim.
	UserID string `json:"-"`
}

// GetUserID returns the subject claim.
func (t *Token) GetUserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if userID == "" {
		return "", errors.New("empty subject in token")
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
