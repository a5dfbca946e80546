// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const tenantIDContextKey contextKey = "tenant_id"

// tenantIDHolder carries the verified tenant id from the validation step back
// to the transport layer, which logs the request after the handler returns.
type tenantIDHolder struct {
	mu sync.Mutex
	id uuid.UUID
}

// WithTenantIDHolder returns a context onto which a verified tenant id can be
// recorded with RecordTenantID.
func WithTenantIDHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, tenantIDContextKey, &tenantIDHolder{})
}

// RecordTenantID records the verified tenant id on the request context. It is
// a no-op when the context carries no holder.
func RecordTenantID(ctx context.Context, id uuid.UUID) {
	holder, ok := ctx.Value(tenantIDContextKey).(*tenantIDHolder)
	if !ok {
		return
	}
	holder.mu.Lock()
	holder.id = id
	holder.mu.Unlock()
}

// TenantIDFromContext returns the recorded tenant id, or the empty string
// when no tenant was verified on this request.
func TenantIDFromContext(ctx context.Context) string {
	holder, ok := ctx.Value(tenantIDContextKey).(*tenantIDHolder)
	if !ok {
		return ""
	}
	holder.mu.Lock()
	defer holder.mu.Unlock()
	if holder.id == uuid.Nil {
		return ""
	}
	return holder.id.String()
}
