package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studymate/studymate-api/internal/models"
)

// ReviewRepository handles review data access
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Upsert saves a review keyed by (sessionId, studentEmail); a repeated
// submission from the same student replaces the earlier review.
func (r *ReviewRepository) Upsert(ctx context.Context, review *models.Review) (*models.WriteResult, error) {
	parsed, err := parseID(review.SessionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	doc := *review
	doc.ID = ""
	docBytes, err := marshalDoc(&doc)
	if err != nil {
		observe("upsertReview", start, err)
		return nil, err
	}

	query := `
		INSERT INTO reviews (session_id, student_email, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT reviews_session_student_key DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = now()
		RETURNING id::text, (xmax = 0) AS inserted
	`

	var (
		id       string
		inserted bool
	)
	err = r.pool.QueryRow(ctx, query, parsed, review.StudentEmail, docBytes).Scan(&id, &inserted)
	if err != nil {
		observe("upsertReview", start, err)
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}

	observe("upsertReview", start, nil)
	if inserted {
		return models.Inserted(id), nil
	}
	return models.Updated(id, 1), nil
}

// ListBySession returns the reviews left for one study session.
func (r *ReviewRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Review, error) {
	parsed, err := parseID(sessionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	query := `
		SELECT id::text, session_id::text, student_email, doc
		FROM reviews
		WHERE session_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, parsed)
	if err != nil {
		observe("listReviewsBySession", start, err)
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		var (
			id, sid, studentEmail string
			docBytes              []byte
		)
		if err := rows.Scan(&id, &sid, &studentEmail, &docBytes); err != nil {
			observe("listReviewsBySession", start, err)
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}

		var review models.Review
		if err := json.Unmarshal(docBytes, &review); err != nil {
			observe("listReviewsBySession", start, err)
			return nil, fmt.Errorf("failed to unmarshal review document: %w", err)
		}
		review.ID = id
		review.SessionID = sid
		review.StudentEmail = studentEmail
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		observe("listReviewsBySession", start, err)
		return nil, fmt.Errorf("failed to read review rows: %w", err)
	}

	observe("listReviewsBySession", start, nil)
	return reviews, nil
}
