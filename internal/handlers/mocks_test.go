package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{Level: "error", Environment: "test"})
}

// Stub services with overridable funcs. Only the funcs a test sets are
// called; the zero value panics, which points straight at the missing stub.

type stubUserService struct {
	saveUser   func(ctx context.Context, req *models.SaveUserRequest) (*models.User, *models.WriteResult, error)
	getUser    func(ctx context.Context, email string) (*models.User, error)
	listUsers  func(ctx context.Context) ([]*models.User, error)
	listTutors func(ctx context.Context) ([]*models.User, error)
}

func (s *stubUserService) SaveUser(ctx context.Context, req *models.SaveUserRequest) (*models.User, *models.WriteResult, error) {
	return s.saveUser(ctx, req)
}

func (s *stubUserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, email)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.listUsers(ctx)
}

func (s *stubUserService) ListTutors(ctx context.Context) ([]*models.User, error) {
	return s.listTutors(ctx)
}

type stubSessionService struct {
	createSession      func(ctx context.Context, tutorEmail string, req *models.CreateSessionRequest) (*models.WriteResult, error)
	approvedSessions   func(ctx context.Context) ([]*models.StudySession, error)
	listSessions       func(ctx context.Context) ([]*models.StudySession, error)
	getSession         func(ctx context.Context, id string) (*models.StudySession, error)
	tutorSessions      func(ctx context.Context, tutorEmail string) ([]*models.StudySession, error)
	getTutorSession    func(ctx context.Context, tutorEmail, id string) (*models.StudySession, error)
	updateTutorSession func(ctx context.Context, tutorEmail, id string, req *models.CreateSessionRequest) (*models.WriteResult, error)
	deleteTutorSession func(ctx context.Context, tutorEmail, id string) (*models.WriteResult, error)
}

func (s *stubSessionService) CreateSession(ctx context.Context, tutorEmail string, req *models.CreateSessionRequest) (*models.WriteResult, error) {
	return s.createSession(ctx, tutorEmail, req)
}

func (s *stubSessionService) ApprovedSessions(ctx context.Context) ([]*models.StudySession, error) {
	return s.approvedSessions(ctx)
}

func (s *stubSessionService) ListSessions(ctx context.Context) ([]*models.StudySession, error) {
	return s.listSessions(ctx)
}

func (s *stubSessionService) GetSession(ctx context.Context, id string) (*models.StudySession, error) {
	return s.getSession(ctx, id)
}

func (s *stubSessionService) TutorSessions(ctx context.Context, tutorEmail string) ([]*models.StudySession, error) {
	return s.tutorSessions(ctx, tutorEmail)
}

func (s *stubSessionService) GetTutorSession(ctx context.Context, tutorEmail, id string) (*models.StudySession, error) {
	return s.getTutorSession(ctx, tutorEmail, id)
}

func (s *stubSessionService) UpdateTutorSession(ctx context.Context, tutorEmail, id string, req *models.CreateSessionRequest) (*models.WriteResult, error) {
	return s.updateTutorSession(ctx, tutorEmail, id, req)
}

func (s *stubSessionService) DeleteTutorSession(ctx context.Context, tutorEmail, id string) (*models.WriteResult, error) {
	return s.deleteTutorSession(ctx, tutorEmail, id)
}

type stubBookingService struct {
	bookSession       func(ctx context.Context, req *models.BookSessionRequest) (*models.WriteResult, error)
	studentBookings   func(ctx context.Context, studentEmail string) ([]*models.BookedSession, error)
	viewBookedSession func(ctx context.Context, sessionID string) (*models.StudySession, error)
}

func (s *stubBookingService) BookSession(ctx context.Context, req *models.BookSessionRequest) (*models.WriteResult, error) {
	return s.bookSession(ctx, req)
}

func (s *stubBookingService) StudentBookings(ctx context.Context, studentEmail string) ([]*models.BookedSession, error) {
	return s.studentBookings(ctx, studentEmail)
}

func (s *stubBookingService) ViewBookedSession(ctx context.Context, sessionID string) (*models.StudySession, error) {
	return s.viewBookedSession(ctx, sessionID)
}

type stubReviewService struct {
	submitReview   func(ctx context.Context, req *models.SubmitReviewRequest) (*models.WriteResult, error)
	sessionReviews func(ctx context.Context, sessionID string) ([]*models.Review, error)
}

func (s *stubReviewService) SubmitReview(ctx context.Context, req *models.SubmitReviewRequest) (*models.WriteResult, error) {
	return s.submitReview(ctx, req)
}

func (s *stubReviewService) SessionReviews(ctx context.Context, sessionID string) ([]*models.Review, error) {
	return s.sessionReviews(ctx, sessionID)
}

type stubNoteService struct {
	createNote   func(ctx context.Context, req *models.CreateNoteRequest) (*models.WriteResult, error)
	studentNotes func(ctx context.Context, studentEmail string) ([]*models.Note, error)
	getNote      func(ctx context.Context, studentEmail, id string) (*models.Note, error)
	updateNote   func(ctx context.Context, studentEmail, id string, req *models.UpdateNoteRequest) (*models.WriteResult, error)
	deleteNote   func(ctx context.Context, studentEmail, id string) (*models.WriteResult, error)
}

func (s *stubNoteService) CreateNote(ctx context.Context, req *models.CreateNoteRequest) (*models.WriteResult, error) {
	return s.createNote(ctx, req)
}

func (s *stubNoteService) StudentNotes(ctx context.Context, studentEmail string) ([]*models.Note, error) {
	return s.studentNotes(ctx, studentEmail)
}

func (s *stubNoteService) GetNote(ctx context.Context, studentEmail, id string) (*models.Note, error) {
	return s.getNote(ctx, studentEmail, id)
}

func (s *stubNoteService) UpdateNote(ctx context.Context, studentEmail, id string, req *models.UpdateNoteRequest) (*models.WriteResult, error) {
	return s.updateNote(ctx, studentEmail, id, req)
}

func (s *stubNoteService) DeleteNote(ctx context.Context, studentEmail, id string) (*models.WriteResult, error) {
	return s.deleteNote(ctx, studentEmail, id)
}

type stubAuthService struct {
	issueToken func(req *models.IssueTokenRequest) (string, error)
	ttlSeconds int
	domain     string
	secure     bool
}

func (s *stubAuthService) IssueToken(req *models.IssueTokenRequest) (string, error) {
	return s.issueToken(req)
}

func (s *stubAuthService) GetCookieTTLSeconds() int { return s.ttlSeconds }
func (s *stubAuthService) GetCookieDomain() string  { return s.domain }
func (s *stubAuthService) GetCookieSecure() bool    { return s.secure }
