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

// NoteRepository handles personal note data access
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func noteDoc(note *models.Note) ([]byte, error) {
	doc := *note
	doc.ID = ""
	return marshalDoc(&doc)
}

func scanNote(id, studentEmail string, docBytes []byte) (*models.Note, error) {
	var note models.Note
	if err := json.Unmarshal(docBytes, &note); err != nil {
		return nil, fmt.Errorf("failed to unmarshal note document: %w", err)
	}
	note.ID = id
	note.StudentEmail = studentEmail
	return &note, nil
}

// Insert creates a new note and returns its id.
func (r *NoteRepository) Insert(ctx context.Context, note *models.Note) (string, error) {
	start := time.Now()

	docBytes, err := noteDoc(note)
	if err != nil {
		observe("insertNote", start, err)
		return "", err
	}

	query := `
		INSERT INTO notes (student_email, doc)
		VALUES ($1, $2)
		RETURNING id::text
	`

	var id string
	err = r.pool.QueryRow(ctx, query, note.StudentEmail, docBytes).Scan(&id)
	if err != nil {
		observe("insertNote", start, err)
		return "", fmt.Errorf("failed to insert note: %w", err)
	}

	observe("insertNote", start, nil)
	return id, nil
}

// GetByKey fetches one note by (studentEmail, id). Absence returns (nil, nil):
// a deleted or never-written note reads back as an empty result, not an error.
func (r *NoteRepository) GetByKey(ctx context.Context, studentEmail, id string) (*models.Note, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	query := `SELECT id::text, student_email, doc FROM notes WHERE id = $1 AND student_email = $2`

	var (
		nid, email string
		docBytes   []byte
	)
	err = r.pool.QueryRow(ctx, query, parsed, studentEmail).Scan(&nid, &email, &docBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			observe("getNoteByKey", start, nil)
			return nil, nil
		}
		observe("getNoteByKey", start, err)
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	observe("getNoteByKey", start, nil)
	return scanNote(nid, email, docBytes)
}

// ListByStudent returns every note owned by the student.
func (r *NoteRepository) ListByStudent(ctx context.Context, studentEmail string) ([]*models.Note, error) {
	start := time.Now()

	query := `
		SELECT id::text, student_email, doc FROM notes
		WHERE student_email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, studentEmail)
	if err != nil {
		observe("listNotesByStudent", start, err)
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		var (
			id, email string
			docBytes  []byte
		)
		if err := rows.Scan(&id, &email, &docBytes); err != nil {
			observe("listNotesByStudent", start, err)
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		note, err := scanNote(id, email, docBytes)
		if err != nil {
			observe("listNotesByStudent", start, err)
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		observe("listNotesByStudent", start, err)
		return nil, fmt.Errorf("failed to read note rows: %w", err)
	}

	observe("listNotesByStudent", start, nil)
	return notes, nil
}

// UpsertByKey updates a note owned by (studentEmail, id), inserting it under
// that id when missing.
func (r *NoteRepository) UpsertByKey(ctx context.Context, note *models.Note) (*models.WriteResult, error) {
	parsed, err := parseID(note.ID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	docBytes, err := noteDoc(note)
	if err != nil {
		observe("upsertNote", start, err)
		return nil, err
	}

	updateQuery := `
		UPDATE notes
		SET doc = $3, updated_at = now()
		WHERE id = $1 AND student_email = $2
	`

	tag, err := r.pool.Exec(ctx, updateQuery, parsed, note.StudentEmail, docBytes)
	if err != nil {
		observe("upsertNote", start, err)
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	if tag.RowsAffected() > 0 {
		observe("upsertNote", start, nil)
		return models.Updated(parsed, tag.RowsAffected()), nil
	}

	insertQuery := `INSERT INTO notes (id, student_email, doc) VALUES ($1, $2, $3)`

	_, err = r.pool.Exec(ctx, insertQuery, parsed, note.StudentEmail, docBytes)
	if err != nil {
		observe("upsertNote", start, err)
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	observe("upsertNote", start, nil)
	return models.Inserted(parsed), nil
}

// DeleteByKey deletes one note by (studentEmail, id). Returns the number of
// deleted rows; deleting a missing note is not an error.
func (r *NoteRepository) DeleteByKey(ctx context.Context, studentEmail, id string) (int64, error) {
	parsed, err := parseID(id)
	if err != nil {
		return 0, err
	}

	start := time.Now()

	query := `DELETE FROM notes WHERE id = $1 AND student_email = $2`

	tag, err := r.pool.Exec(ctx, query, parsed, studentEmail)
	if err != nil {
		observe("deleteNote", start, err)
		return 0, fmt.Errorf("failed to delete note: %w", err)
	}

	observe("deleteNote", start, nil)
	return tag.RowsAffected(), nil
}
