// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VerifyTenantToken verifies an HMAC-signed tenant access token and returns
// the tenant id from its "id" claim. An expiry claim is required and enforced
// with no clock skew allowance; issuer and audience are not checked.
func VerifyTenantToken(tokenString string, secret []byte) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token verification failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	rawID, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("token is missing the 'id' claim")
	}

	tenantID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("'id' claim is not a valid UUID: %w", err)
	}

	return tenantID, nil
}
