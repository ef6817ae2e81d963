package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/repository"
	"github.com/studymate/studymate-api/pkg/logger"
	"go.uber.org/zap"
)

// NoteService handles personal study note operations
type NoteService struct {
	noteRepo repository.NoteStore
}

// NewNoteService creates a new note service instance
func NewNoteService(noteRepo repository.NoteStore) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// CreateNote stores a new note for a student.
func (s *NoteService) CreateNote(ctx context.Context, req *models.CreateNoteRequest) (*models.WriteResult, error) {
	note := &models.Note{
		StudentEmail: req.StudentEmail,
		Title:        req.Title,
		Description:  req.Description,
		Timestamp:    time.Now().UnixMilli(),
	}

	id, err := s.noteRepo.Insert(ctx, note)
	if err != nil {
		logger.Error("Failed to create note",
			zap.String("student_email", req.StudentEmail),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	logger.Info("Note created",
		zap.String("note_id", id),
		zap.String("student_email", req.StudentEmail))
	return models.Inserted(id), nil
}

// StudentNotes returns every note owned by a student.
func (s *NoteService) StudentNotes(ctx context.Context, studentEmail string) ([]*models.Note, error) {
	return s.noteRepo.ListByStudent(ctx, studentEmail)
}

// GetNote fetches one note by owner and id; a missing note yields (nil, nil).
func (s *NoteService) GetNote(ctx context.Context, studentEmail, id string) (*models.Note, error) {
	return s.noteRepo.GetByKey(ctx, studentEmail, id)
}

// UpdateNote upserts a note under (studentEmail, id). The owner and id come
// from the route, never from the body.
func (s *NoteService) UpdateNote(ctx context.Context, studentEmail, id string, req *models.UpdateNoteRequest) (*models.WriteResult, error) {
	note := &models.Note{
		ID:           id,
		StudentEmail: studentEmail,
		Title:        req.Title,
		Description:  req.Description,
		Timestamp:    time.Now().UnixMilli(),
	}

	result, err := s.noteRepo.UpsertByKey(ctx, note)
	if err != nil {
		logger.Error("Failed to update note",
			zap.String("note_id", id),
			zap.String("student_email", studentEmail),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// DeleteNote deletes a note owned by (studentEmail, id). Deleting a missing
// note is not an error.
func (s *NoteService) DeleteNote(ctx context.Context, studentEmail, id string) (*models.WriteResult, error) {
	deleted, err := s.noteRepo.DeleteByKey(ctx, studentEmail, id)
	if err != nil {
		logger.Error("Failed to delete note",
			zap.String("note_id", id),
			zap.String("student_email", studentEmail),
			zap.Error(err))
		return nil, err
	}
	return &models.WriteResult{Ok: true, ID: id, Matched: deleted, Modified: deleted}, nil
}
