package domain

// Owner keys accepted on cart items. Items written by older clients carry
// "email"; newer ones may send "ownerEmail".
const (
	CartOwnerField      = "email"
	CartOwnerAliasField = "ownerEmail"
)

// CartItem is an entry in a user's cart.
type CartItem Document

// ID returns the cart item identifier.
func (c CartItem) ID() string {
	return Document(c).ID()
}

// OwnerEmail returns the owner key of the item, preferring "email".
func (c CartItem) OwnerEmail() string {
	if v, ok := c[CartOwnerField].(string); ok && v != "" {
		return v
	}
	if v, ok := c[CartOwnerAliasField].(string); ok {
		return v
	}
	return ""
}
