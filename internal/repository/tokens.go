// Package repository holds the token store implementations backing the
// authorization gate. The store is injected rather than kept as package
// state so tests get isolated token sets and a future expiry policy has a
// single place to land.
package repository

import "context"

// TokenStore tracks issued auth tokens. Tokens never expire on their own;
// a store's contents live as long as its backing medium does.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Valid(ctx context.Context, token string) (bool, error)
}
