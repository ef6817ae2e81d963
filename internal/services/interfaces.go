package services

import (
	"context"

	"github.com/studymate/studymate-api/internal/models"
)

// Service interfaces consumed by the HTTP handlers. Handlers depend on these
// so tests can substitute mocks.

type AuthServiceInterface interface {
	IssueToken(req *models.IssueTokenRequest) (string, error)
	GetCookieTTLSeconds() int
	GetCookieDomain() string
	GetCookieSecure() bool
}

type UserServiceInterface interface {
	SaveUser(ctx context.Context, req *models.SaveUserRequest) (*models.User, *models.WriteResult, error)
	GetUser(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListTutors(ctx context.Context) ([]*models.User, error)
}

type SessionServiceInterface interface {
	CreateSession(ctx context.Context, tutorEmail string, req *models.CreateSessionRequest) (*models.WriteResult, error)
	ApprovedSessions(ctx context.Context) ([]*models.StudySession, error)
	ListSessions(ctx context.Context) ([]*models.StudySession, error)
	GetSession(ctx context.Context, id string) (*models.StudySession, error)
	TutorSessions(ctx context.Context, tutorEmail string) ([]*models.StudySession, error)
	GetTutorSession(ctx context.Context, tutorEmail, id string) (*models.StudySession, error)
	UpdateTutorSession(ctx context.Context, tutorEmail, id string, req *models.CreateSessionRequest) (*models.WriteResult, error)
	DeleteTutorSession(ctx context.Context, tutorEmail, id string) (*models.WriteResult, error)
}

type BookingServiceInterface interface {
	BookSession(ctx context.Context, req *models.BookSessionRequest) (*models.WriteResult, error)
	StudentBookings(ctx context.Context, studentEmail string) ([]*models.BookedSession, error)
	ViewBookedSession(ctx context.Context, sessionID string) (*models.StudySession, error)
}

type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, req *models.SubmitReviewRequest) (*models.WriteResult, error)
	SessionReviews(ctx context.Context, sessionID string) ([]*models.Review, error)
}

type NoteServiceInterface interface {
	CreateNote(ctx context.Context, req *models.CreateNoteRequest) (*models.WriteResult, error)
	StudentNotes(ctx context.Context, studentEmail string) ([]*models.Note, error)
	GetNote(ctx context.Context, studentEmail, id string) (*models.Note, error)
	UpdateNote(ctx context.Context, studentEmail, id string, req *models.UpdateNoteRequest) (*models.WriteResult, error)
	DeleteNote(ctx context.Context, studentEmail, id string) (*models.WriteResult, error)
}

type ProfileServiceInterface interface {
	UploadAvatar(ctx context.Context, email string, req *models.UploadAvatarRequest) (string, error)
}

var (
	_ AuthServiceInterface    = (*AuthService)(nil)
	_ UserServiceInterface    = (*UserService)(nil)
	_ SessionServiceInterface = (*SessionService)(nil)
	_ BookingServiceInterface = (*BookingService)(nil)
	_ ReviewServiceInterface  = (*ReviewService)(nil)
	_ NoteServiceInterface    = (*NoteService)(nil)
	_ ProfileServiceInterface = (*ProfileService)(nil)
)
