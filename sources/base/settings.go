// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package base

import "strings"

// Well-known connection setting keys. Lookups are case-insensitive, so these
// spellings are only the canonical ones used in documentation and responses.
const (
	SettingAPIKey            = "ApiKey"
	SettingTenantAccessToken = "TenantAccessToken"
	SettingSourceTable       = "SourceTable"
)

// Settings holds the connection-level key/value pairs attached to every
// request. Keys are matched case-insensitively. A Settings map is treated as
// immutable once a request is in flight.
type Settings map[string]string

// Get returns the value for key, matching the key case-insensitively.
func (s Settings) Get(key string) (value string, ok bool) {
	for k, v := range s {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
