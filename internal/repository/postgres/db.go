package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument reads an (id, doc) pair into a document carrying its _id.
func scanDocument(s rowScanner) (domain.Document, error) {
	var id string
	var raw []byte
	if err := s.Scan(&id, &raw); err != nil {
		return nil, err
	}

	doc := domain.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	doc[domain.IDField] = id
	return doc, nil
}

// queryDocuments runs query and scans every row as a document.
func queryDocuments(ctx context.Context, q Querier, query string, args ...any) ([]domain.Document, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// insertDocument stores doc under a new ID in table.
func insertDocument(ctx context.Context, q Querier, table string, doc domain.Document) (repository.InsertResult, error) {
	id := domain.NewID()

	payload, err := json.Marshal(doc.WithoutID())
	if err != nil {
		return repository.InsertResult{}, fmt.Errorf("encode document: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, table)
	if _, err := q.ExecContext(ctx, query, id, payload); err != nil {
		return repository.InsertResult{}, err
	}

	return repository.InsertResult{InsertedID: id, Acknowledged: true}, nil
}

// translateError maps database/sql and pq errors onto the repository error taxonomy.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", op, repository.ErrStorageUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%s: %w: %w", op, repository.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, repository.ErrStorageFailure, err)
}
