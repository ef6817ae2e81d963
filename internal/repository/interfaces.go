package repository

import (
	"context"

	"github.com/studymate/studymate-api/internal/models"
)

// UserStore is the data access surface for the users collection.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) (*models.WriteResult, error)
	UpdateStatus(ctx context.Context, email, status string) (int64, error)
	UpdatePhotoURL(ctx context.Context, email, photoURL string) (int64, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	ListVerifiedTutors(ctx context.Context) ([]*models.User, error)
}

// SessionStore is the data access surface for study sessions.
type SessionStore interface {
	Insert(ctx context.Context, session *models.StudySession) (string, error)
	GetByID(ctx context.Context, id string) (*models.StudySession, error)
	GetByTutorAndID(ctx context.Context, tutorEmail, id string) (*models.StudySession, error)
	ListAll(ctx context.Context) ([]*models.StudySession, error)
	ListApproved(ctx context.Context, limit int) ([]*models.StudySession, error)
	ListByTutor(ctx context.Context, tutorEmail string) ([]*models.StudySession, error)
	UpsertByTutorAndID(ctx context.Context, session *models.StudySession) (*models.WriteResult, error)
	DeleteByTutorAndID(ctx context.Context, tutorEmail, id string) (int64, error)
}

// BookingStore is the data access surface for booked sessions.
type BookingStore interface {
	Upsert(ctx context.Context, booking *models.BookedSession) (*models.WriteResult, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]*models.BookedSession, error)
}

// ReviewStore is the data access surface for reviews.
type ReviewStore interface {
	Upsert(ctx context.Context, review *models.Review) (*models.WriteResult, error)
	ListBySession(ctx context.Context, sessionID string) ([]*models.Review, error)
}

// NoteStore is the data access surface for personal notes.
type NoteStore interface {
	Insert(ctx context.Context, note *models.Note) (string, error)
	GetByKey(ctx context.Context, studentEmail, id string) (*models.Note, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]*models.Note, error)
	UpsertByKey(ctx context.Context, note *models.Note) (*models.WriteResult, error)
	DeleteByKey(ctx context.Context, studentEmail, id string) (int64, error)
}

var _ UserStore = (*UserRepository)(nil)
var _ SessionStore = (*SessionRepository)(nil)
var _ BookingStore = (*BookingRepository)(nil)
var _ ReviewStore = (*ReviewRepository)(nil)
var _ NoteStore = (*NoteRepository)(nil)
