package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"triphaven/internal/domain"
)

// toDocument converts a decoded BSON map into a domain document with a hex _id.
func toDocument(m bson.M) domain.Document {
	doc := domain.Document(m)
	if oid, ok := m[domain.IDField].(primitive.ObjectID); ok {
		doc[domain.IDField] = oid.Hex()
	}
	return doc
}

// newRecord copies doc for insertion under a freshly generated ObjectID.
func newRecord(doc domain.Document) (bson.M, primitive.ObjectID) {
	oid := primitive.NewObjectID()
	record := bson.M(doc.WithoutID())
	record[domain.IDField] = oid
	return record, oid
}

// objectIDs parses hex ids. Callers validate ids first; unparsable entries are skipped.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out
}

// BSONOptions decodes nested documents as maps so records round-trip to JSON
// with their original shape.
func BSONOptions() *options.BSONOptions {
	return &options.BSONOptions{
		DefaultDocumentM: true,
		NilSliceAsEmpty:  true,
	}
}
