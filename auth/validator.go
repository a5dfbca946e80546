// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"github.com/google/uuid"

	"datashelf/platform/sources/base"
)

// Failure reasons reported per setting.
const (
	ReasonNotFound     = "Not found"
	ReasonWrongKey     = "Wrong key"
	ReasonInvalidToken = "Invalid access token"
)

// SettingFailure names a connection setting that failed validation, with one
// or more reasons.
type SettingFailure struct {
	FieldName string   `json:"fieldName"`
	Reasons   []string `json:"reasons"`
}

// ValidationResult is the outcome of validating a connection's settings. When
// Valid is false, Failures lists every setting that failed. TenantID is the
// subject of the verified access token; it is uuid.Nil unless the token
// checked out, and is never serialized to clients.
type ValidationResult struct {
	Valid    bool             `json:"isValid"`
	Failures []SettingFailure `json:"failures,omitempty"`
	TenantID uuid.UUID        `json:"-"`
}

// Validator checks connection settings against the configured credentials.
type Validator struct {
	apiKey    string
	jwtSecret []byte
}

// NewValidator creates a validator for the given API key and token signing
// secret.
func NewValidator(apiKey string, jwtSecret []byte) *Validator {
	return &Validator{apiKey: apiKey, jwtSecret: jwtSecret}
}

// ValidateConnection checks the API key and tenant access token settings. All
// settings are checked so the result reports every failure at once. It never
// returns an error: a malformed token is a validation failure, not a fault.
func (v *Validator) ValidateConnection(settings base.Settings) ValidationResult {
	var failures []SettingFailure
	var tenantID uuid.UUID

	apiKey, ok := settings.Get(base.SettingAPIKey)
	if !ok || apiKey == "" {
		failures = append(failures, SettingFailure{
			FieldName: base.SettingAPIKey,
			Reasons:   []string{ReasonNotFound},
		})
	} else if apiKey != v.apiKey {
		failures = append(failures, SettingFailure{
			FieldName: base.SettingAPIKey,
			Reasons:   []string{ReasonWrongKey},
		})
	}

	token, ok := settings.Get(base.SettingTenantAccessToken)
	if !ok || token == "" {
		failures = append(failures, SettingFailure{
			FieldName: base.SettingTenantAccessToken,
			Reasons:   []string{ReasonNotFound},
		})
	} else if id, err := VerifyTenantToken(token, v.jwtSecret); err != nil {
		failures = append(failures, SettingFailure{
			FieldName: base.SettingTenantAccessToken,
			Reasons:   []string{ReasonInvalidToken},
		})
	} else {
		tenantID = id
	}

	return ValidationResult{
		Valid:    len(failures) == 0,
		Failures: failures,
		TenantID: tenantID,
	}
}
