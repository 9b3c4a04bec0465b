package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save insert/update an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Result) error {
	const q = `
INSERT INTO analyses (id, owner_id, title, result_json, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
 title = EXCLUDED.title,
 result_json = EXCLUDED.result_json;`

	blob, err := marshalResult(a)
	if err != nil {
		return err
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q, a.ID, stringOrDash(a.OwnerID), a.Title, blob, created)
	return err
}

// ListByOwner returns the owner's analyses, newest first.
func (r *AnalysisRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*domain.Result, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, owner_id, title, result_json, created_at
FROM analyses
WHERE owner_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2;`

	rows, err := r.db.QueryContext(ctx, q, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Result
	for rows.Next() {
		res, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Get by ID + owner
func (r *AnalysisRepository) Get(ctx context.Context, owner, id string) (*domain.Result, error) {
	const q = `
SELECT id, owner_id, title, result_json, created_at
FROM analyses
WHERE owner_id=$1 AND id=$2 LIMIT 1;`

	row := r.db.QueryRowContext(ctx, q, owner, id)
	res, err := scanResult(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func marshalResult(a *domain.Result) ([]byte, error) {
	doc := *a
	doc.ID = ""
	doc.OwnerID = ""
	doc.CreatedAt = time.Time{}
	blob, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return blob, nil
}

func scanResult(scan func(...any) error) (*domain.Result, error) {
	var (
		id, owner, title string
		blob             []byte
		created          time.Time
	)
	if err := scan(&id, &owner, &title, &blob, &created); err != nil {
		return nil, err
	}
	var res domain.Result
	if err := json.Unmarshal(blob, &res); err != nil {
		return nil, fmt.Errorf("corrupt analysis row %s: %w", id, err)
	}
	res.ID = id
	res.OwnerID = owner
	res.Title = title
	res.CreatedAt = created
	return &res, nil
}
