package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studymate/studymate-api/internal/models"
)

// SessionRepository handles study session data access
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new study session repository
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func scanSession(id, tutorEmail, title, status string, docBytes []byte) (*models.StudySession, error) {
	var session models.StudySession
	if err := json.Unmarshal(docBytes, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session document: %w", err)
	}
	session.ID = id
	session.TutorEmail = tutorEmail
	session.Title = title
	session.Status = status
	return &session, nil
}

func sessionDoc(session *models.StudySession) ([]byte, error) {
	doc := *session
	doc.ID = ""
	return marshalDoc(&doc)
}

// Insert creates a new study session and returns its id.
func (r *SessionRepository) Insert(ctx context.Context, session *models.StudySession) (string, error) {
	start := time.Now()

	docBytes, err := sessionDoc(session)
	if err != nil {
		observe("insertSession", start, err)
		return "", err
	}

	query := `
		INSERT INTO study_sessions (tutor_email, title, status, doc)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`

	status := session.Status
	if status == "" {
		status = models.SessionPending
	}

	var id string
	err = r.pool.QueryRow(ctx, query, session.TutorEmail, session.Title, status, docBytes).Scan(&id)
	if err != nil {
		observe("insertSession", start, err)
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	observe("insertSession", start, nil)
	return id, nil
}

// GetByID fetches one session by id. Absence returns (nil, nil).
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.StudySession, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	query := `SELECT id::text, tutor_email, title, status, doc FROM study_sessions WHERE id = $1`

	var (
		sid, tutorEmail, title, status string
		docBytes                       []byte
	)
	err = r.pool.QueryRow(ctx, query, parsed).Scan(&sid, &tutorEmail, &title, &status, &docBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			observe("getSessionByID", start, nil)
			return nil, nil
		}
		observe("getSessionByID", start, err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	observe("getSessionByID", start, nil)
	return scanSession(sid, tutorEmail, title, status, docBytes)
}

// GetByTutorAndID fetches one session owned by the tutor. A wrong owner
// behaves exactly like a missing session.
func (r *SessionRepository) GetByTutorAndID(ctx context.Context, tutorEmail, id string) (*models.StudySession, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	query := `
		SELECT id::text, tutor_email, title, status, doc FROM study_sessions
		WHERE id = $1 AND tutor_email = $2
	`

	var (
		sid, email, title, status string
		docBytes                  []byte
	)
	err = r.pool.QueryRow(ctx, query, parsed, tutorEmail).Scan(&sid, &email, &title, &status, &docBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			observe("getSessionByTutor", start, nil)
			return nil, nil
		}
		observe("getSessionByTutor", start, err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	observe("getSessionByTutor", start, nil)
	return scanSession(sid, email, title, status, docBytes)
}

func (r *SessionRepository) querySessions(ctx context.Context, operation, query string, args ...interface{}) ([]*models.StudySession, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		observe(operation, start, err)
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.StudySession{}
	for rows.Next() {
		var (
			id, tutorEmail, title, status string
			docBytes                      []byte
		)
		if err := rows.Scan(&id, &tutorEmail, &title, &status, &docBytes); err != nil {
			observe(operation, start, err)
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		session, err := scanSession(id, tutorEmail, title, status, docBytes)
		if err != nil {
			observe(operation, start, err)
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		observe(operation, start, err)
		return nil, fmt.Errorf("failed to read session rows: %w", err)
	}

	observe(operation, start, nil)
	return sessions, nil
}

// ListAll returns every study session.
func (r *SessionRepository) ListAll(ctx context.Context) ([]*models.StudySession, error) {
	query := `SELECT id::text, tutor_email, title, status, doc FROM study_sessions ORDER BY created_at DESC`
	return r.querySessions(ctx, "listSessions", query)
}

// ListApproved returns approved sessions, capped at limit.
func (r *SessionRepository) ListApproved(ctx context.Context, limit int) ([]*models.StudySession, error) {
	query := `
		SELECT id::text, tutor_email, title, status, doc FROM study_sessions
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.querySessions(ctx, "listApprovedSessions", query, models.SessionApproved, limit)
}

// ListByTutor returns the sessions created by the given tutor.
func (r *SessionRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]*models.StudySession, error) {
	query := `
		SELECT id::text, tutor_email, title, status, doc FROM study_sessions
		WHERE tutor_email = $1
		ORDER BY created_at DESC
	`
	return r.querySessions(ctx, "listSessionsByTutor", query, tutorEmail)
}

// UpsertByTutorAndID updates a session owned by (tutorEmail, id); when no
// such session exists the document is inserted under that id, preserving the
// upsert contract of the PUT route.
func (r *SessionRepository) UpsertByTutorAndID(ctx context.Context, session *models.StudySession) (*models.WriteResult, error) {
	parsed, err := parseID(session.ID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	docBytes, err := sessionDoc(session)
	if err != nil {
		observe("upsertSession", start, err)
		return nil, err
	}

	status := session.Status
	if status == "" {
		status = models.SessionPending
	}

	updateQuery := `
		UPDATE study_sessions
		SET title = $3, status = $4, doc = $5, updated_at = now()
		WHERE id = $1 AND tutor_email = $2
	`

	tag, err := r.pool.Exec(ctx, updateQuery, parsed, session.TutorEmail, session.Title, status, docBytes)
	if err != nil {
		observe("upsertSession", start, err)
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() > 0 {
		observe("upsertSession", start, nil)
		return models.Updated(parsed, tag.RowsAffected()), nil
	}

	insertQuery := `
		INSERT INTO study_sessions (id, tutor_email, title, status, doc)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, insertQuery, parsed, session.TutorEmail, session.Title, status, docBytes)
	if err != nil {
		observe("upsertSession", start, err)
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	observe("upsertSession", start, nil)
	return models.Inserted(parsed), nil
}

// DeleteByTutorAndID deletes one session owned by the tutor. Returns the
// number of deleted rows.
func (r *SessionRepository) DeleteByTutorAndID(ctx context.Context, tutorEmail, id string) (int64, error) {
	parsed, err := parseID(id)
	if err != nil {
		return 0, err
	}

	start := time.Now()

	query := `DELETE FROM study_sessions WHERE id = $1 AND tutor_email = $2`

	tag, err := r.pool.Exec(ctx, query, parsed, tutorEmail)
	if err != nil {
		observe("deleteSession", start, err)
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}

	observe("deleteSession", start, nil)
	return tag.RowsAffected(), nil
}
