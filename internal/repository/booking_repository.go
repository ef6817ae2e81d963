package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studymate/studymate-api/internal/models"
)

// BookingRepository handles booked session data access
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Upsert saves a booking keyed by (studentEmail, sessionId). Booking the same
// session again refreshes the existing record; it never duplicates and never
// fails.
func (r *BookingRepository) Upsert(ctx context.Context, booking *models.BookedSession) (*models.WriteResult, error) {
	parsed, err := parseID(booking.SessionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	doc := *booking
	doc.ID = ""
	docBytes, err := marshalDoc(&doc)
	if err != nil {
		observe("upsertBooking", start, err)
		return nil, err
	}

	query := `
		INSERT INTO booked_sessions (student_email, session_id, tutor_email, session_title, doc)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT booked_sessions_student_session_key DO UPDATE
		SET tutor_email = EXCLUDED.tutor_email,
			session_title = EXCLUDED.session_title,
			doc = EXCLUDED.doc,
			updated_at = now()
		RETURNING id::text, (xmax = 0) AS inserted
	`

	var (
		id       string
		inserted bool
	)
	err = r.pool.QueryRow(ctx, query,
		booking.StudentEmail, parsed, booking.TutorEmail, booking.SessionTitle, docBytes,
	).Scan(&id, &inserted)
	if err != nil {
		observe("upsertBooking", start, err)
		return nil, fmt.Errorf("failed to upsert booking: %w", err)
	}

	observe("upsertBooking", start, nil)
	if inserted {
		return models.Inserted(id), nil
	}
	return models.Updated(id, 1), nil
}

// ListByStudent returns the bookings made by the given student.
func (r *BookingRepository) ListByStudent(ctx context.Context, studentEmail string) ([]*models.BookedSession, error) {
	start := time.Now()

	query := `
		SELECT id::text, student_email, session_id::text, tutor_email, session_title, doc
		FROM booked_sessions
		WHERE student_email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, studentEmail)
	if err != nil {
		observe("listBookingsByStudent", start, err)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.BookedSession{}
	for rows.Next() {
		var (
			id, studentEmail, sessionID, tutorEmail, sessionTitle string
			docBytes                                              []byte
		)
		if err := rows.Scan(&id, &studentEmail, &sessionID, &tutorEmail, &sessionTitle, &docBytes); err != nil {
			observe("listBookingsByStudent", start, err)
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}

		var booking models.BookedSession
		if err := json.Unmarshal(docBytes, &booking); err != nil {
			observe("listBookingsByStudent", start, err)
			return nil, fmt.Errorf("failed to unmarshal booking document: %w", err)
		}
		booking.ID = id
		booking.StudentEmail = studentEmail
		booking.SessionID = sessionID
		booking.TutorEmail = tutorEmail
		booking.SessionTitle = sessionTitle
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		observe("listBookingsByStudent", start, err)
		return nil, fmt.Errorf("failed to read booking rows: %w", err)
	}

	observe("listBookingsByStudent", start, nil)
	return bookings, nil
}
