package repository

// InsertResult acknowledges a single insert.
type InsertResult struct {
	InsertedID   string `json:"insertedId"`
	Acknowledged bool   `json:"acknowledged"`
}

// DeleteResult acknowledges a delete. DeletedCount is the number of records
// actually removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
	Acknowledged bool  `json:"acknowledged"`
}
