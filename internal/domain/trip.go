package domain

// Trip is a catalog record. It is seeded out of band and never modified
// through the API.
type Trip Document

// ID returns the trip identifier.
func (t Trip) ID() string {
	return Document(t).ID()
}
