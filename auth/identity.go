// Package auth supplies the identity of the calling user to the ingestion
// pipeline. User identities are never stored raw: every record carries a
// stable BLAKE2b hash of the authenticated principal instead.
package auth

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/go-crypt/x/blake2b"
)

// ErrNoPrincipal indicates that no authenticated principal was found on the
// context.
var ErrNoPrincipal = errors.New("no authenticated principal on context")

type principalContextKey struct{}

// WithPrincipal returns a context carrying the authenticated principal
// (typically the user's account identifier or email).
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFrom extracts the authenticated principal from the context.
func PrincipalFrom(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(string)
	if !ok || principal == "" {
		return "", false
	}
	return principal, true
}

// Identity supplies a stable hashed identifier for the current
// authenticated user. Implementations must be thread-safe.
type Identity interface {
	// UserHash returns the hashed identifier of the user carried on ctx.
	// The same principal always produces the same hash.
	UserHash(ctx context.Context) (string, error)
}

// HashedIdentity implements Identity by hashing the context principal with
// BLAKE2b. The hash is deterministic, so the same user resolves to the same
// identifier across requests and processes.
type HashedIdentity struct{}

var _ Identity = (*HashedIdentity)(nil)

// NewHashedIdentity creates a new HashedIdentity.
func NewHashedIdentity() *HashedIdentity {
	return &HashedIdentity{}
}

// UserHash returns the hex-encoded BLAKE2b-256 hash of the context principal.
func (h *HashedIdentity) UserHash(ctx context.Context) (string, error) {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return "", ErrNoPrincipal
	}

	digest, err := blake2b.New(32, nil)
	if err != nil {
		return "", err
	}
	digest.Write([]byte(principal))
	return hex.EncodeToString(digest.Sum(nil)), nil
}
