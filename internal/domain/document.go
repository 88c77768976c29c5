package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the document key that carries the record identifier.
const IDField = "_id"

// Document is an opaque stored record. Attributes other than the identifier
// are passed through verbatim.
type Document map[string]any

// ID returns the record identifier as a hex string, or "" when unset.
func (d Document) ID() string {
	switch v := d[IDField].(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	default:
		return ""
	}
}

// WithoutID returns a shallow copy of d with the identifier removed.
func (d Document) WithoutID() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}

// NewID returns a fresh 24-hex record identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a syntactically valid record identifier.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// ParseID validates id and returns its canonical lowercase form. Stored
// identifiers are always lowercase, so lookups must use the parsed value.
func ParseID(id string) (string, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}
