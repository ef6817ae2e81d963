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

// UserRepository handles user data access
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(id string, role, status string, docBytes []byte) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal(docBytes, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user document: %w", err)
	}
	user.ID = id
	user.Role = role
	user.Status = status
	return &user, nil
}

// GetByEmail fetches a user by email. Absence is not an error: a missing
// user returns (nil, nil).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()

	query := `SELECT id::text, role, status, doc FROM users WHERE email = $1`

	var (
		id, role, status string
		docBytes         []byte
	)
	err := r.pool.QueryRow(ctx, query, email).Scan(&id, &role, &status, &docBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			observe("getUserByEmail", start, nil)
			return nil, nil
		}
		observe("getUserByEmail", start, err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	observe("getUserByEmail", start, nil)
	return scanUser(id, role, status, docBytes)
}

// Upsert saves a user keyed by email. The role and status columns mirror the
// document so gates and listings can filter without touching the jsonb.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) (*models.WriteResult, error) {
	start := time.Now()

	doc := *user
	doc.ID = ""
	docBytes, err := marshalDoc(&doc)
	if err != nil {
		observe("upsertUser", start, err)
		return nil, err
	}

	role := user.Role
	if role == "" {
		role = models.RoleStudent
	}
	status := user.Status
	if status == "" {
		status = models.StatusNone
	}

	query := `
		INSERT INTO users (email, role, status, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET role = EXCLUDED.role, status = EXCLUDED.status,
			doc = EXCLUDED.doc, updated_at = now()
		RETURNING id::text, (xmax = 0) AS inserted
	`

	var (
		id       string
		inserted bool
	)
	err = r.pool.QueryRow(ctx, query, user.Email, role, status, docBytes).Scan(&id, &inserted)
	if err != nil {
		observe("upsertUser", start, err)
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	observe("upsertUser", start, nil)
	if inserted {
		return models.Inserted(id), nil
	}
	return models.Updated(id, 1), nil
}

// UpdateStatus updates only the status of an existing user. Returns the
// number of matched rows.
func (r *UserRepository) UpdateStatus(ctx context.Context, email, status string) (int64, error) {
	start := time.Now()

	query := `
		UPDATE users
		SET status = $2,
			doc = jsonb_set(doc, '{status}', to_jsonb($2::text)),
			updated_at = now()
		WHERE email = $1
	`

	tag, err := r.pool.Exec(ctx, query, email, status)
	if err != nil {
		observe("updateUserStatus", start, err)
		return 0, fmt.Errorf("failed to update user status: %w", err)
	}

	observe("updateUserStatus", start, nil)
	return tag.RowsAffected(), nil
}

// UpdatePhotoURL stores the avatar URL on the user document.
func (r *UserRepository) UpdatePhotoURL(ctx context.Context, email, photoURL string) (int64, error) {
	start := time.Now()

	query := `
		UPDATE users
		SET doc = jsonb_set(doc, '{photoURL}', to_jsonb($2::text)),
			updated_at = now()
		WHERE email = $1
	`

	tag, err := r.pool.Exec(ctx, query, email, photoURL)
	if err != nil {
		observe("updateUserPhotoURL", start, err)
		return 0, fmt.Errorf("failed to update user photo: %w", err)
	}

	observe("updateUserPhotoURL", start, nil)
	return tag.RowsAffected(), nil
}

func (r *UserRepository) queryUsers(ctx context.Context, operation, query string, args ...interface{}) ([]*models.User, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		observe(operation, start, err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var (
			id, role, status string
			docBytes         []byte
		)
		if err := rows.Scan(&id, &role, &status, &docBytes); err != nil {
			observe(operation, start, err)
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user, err := scanUser(id, role, status, docBytes)
		if err != nil {
			observe(operation, start, err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		observe(operation, start, err)
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	observe(operation, start, nil)
	return users, nil
}

// ListAll returns every user document.
func (r *UserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id::text, role, status, doc FROM users ORDER BY created_at`
	return r.queryUsers(ctx, "listUsers", query)
}

// ListVerifiedTutors returns users with role tutor and status Verified.
func (r *UserRepository) ListVerifiedTutors(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id::text, role, status, doc FROM users
		WHERE role = $1 AND status = $2
		ORDER BY created_at
	`
	return r.queryUsers(ctx, "listVerifiedTutors", query, models.RoleTutor, models.StatusVerified)
}
