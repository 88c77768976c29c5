package domain

import "errors"

// CartItemIDsField is the payment key listing the cart items it settles.
const CartItemIDsField = "cartItemIds"

var (
	// ErrCartItemIDsMissing is returned when a payment has no cartItemIds key.
	ErrCartItemIDsMissing = errors.New("cartItemIds is required")

	// ErrCartItemIDsMalformed is returned when cartItemIds is not a list of ids.
	ErrCartItemIDsMalformed = errors.New("cartItemIds must be a list of record ids")
)

// Payment is a recorded payment. Apart from cartItemIds the payload is opaque.
type Payment Document

// ID returns the payment identifier.
func (p Payment) ID() string {
	return Document(p).ID()
}

// CartItemIDs returns the canonical cart item ids the payment settles, in
// input order. Every entry must be a valid record identifier.
func (p Payment) CartItemIDs() ([]string, error) {
	raw, ok := p[CartItemIDsField]
	if !ok || raw == nil {
		return nil, ErrCartItemIDsMissing
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	default:
		return nil, ErrCartItemIDsMalformed
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, ErrCartItemIDsMalformed
		}
		id, ok := ParseID(str)
		if !ok {
			return nil, ErrCartItemIDsMalformed
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UniqueIDs returns ids with duplicates removed, keeping first occurrences.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
