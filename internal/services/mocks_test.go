package services

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/cache"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{Level: "error", Environment: "test"})
}

var errStore = errors.New("store failure")

// mockUserStore is an in-memory UserStore keyed by email.
type mockUserStore struct {
	users             map[string]*models.User
	upsertCalls       int
	updateStatusCalls int
	photoURLs         map[string]string
	failGet           bool
	failPhotoURL      bool
}

func newMockUserStore(users ...*models.User) *mockUserStore {
	m := &mockUserStore{
		users:     make(map[string]*models.User),
		photoURLs: make(map[string]string),
	}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.failGet {
		return nil, errStore
	}
	return m.users[email], nil
}

func (m *mockUserStore) Upsert(_ context.Context, user *models.User) (*models.WriteResult, error) {
	m.upsertCalls++
	if _, exists := m.users[user.Email]; exists {
		m.users[user.Email] = user
		return models.Updated(user.Email, 1), nil
	}
	user.ID = "generated-id"
	m.users[user.Email] = user
	return models.Inserted("generated-id"), nil
}

func (m *mockUserStore) UpdateStatus(_ context.Context, email, status string) (int64, error) {
	m.updateStatusCalls++
	if u, exists := m.users[email]; exists {
		u.Status = status
		return 1, nil
	}
	return 0, nil
}

func (m *mockUserStore) UpdatePhotoURL(_ context.Context, email, photoURL string) (int64, error) {
	if m.failPhotoURL {
		return 0, errStore
	}
	m.photoURLs[email] = photoURL
	if _, exists := m.users[email]; exists {
		return 1, nil
	}
	return 0, nil
}

func (m *mockUserStore) ListAll(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserStore) ListVerifiedTutors(_ context.Context) ([]*models.User, error) {
	var tutors []*models.User
	for _, u := range m.users {
		if u.Role == models.RoleTutor && u.Status == models.StatusVerified {
			tutors = append(tutors, u)
		}
	}
	return tutors, nil
}

// mockSessionStore is an in-memory SessionStore keyed by id.
type mockSessionStore struct {
	sessions    map[string]*models.StudySession
	insertCalls int
	nextID      string
}

func newMockSessionStore(sessions ...*models.StudySession) *mockSessionStore {
	m := &mockSessionStore{
		sessions: make(map[string]*models.StudySession),
		nextID:   "session-id-1",
	}
	for _, s := range sessions {
		m.sessions[s.ID] = s
	}
	return m
}

func (m *mockSessionStore) Insert(_ context.Context, session *models.StudySession) (string, error) {
	m.insertCalls++
	session.ID = m.nextID
	m.sessions[session.ID] = session
	return session.ID, nil
}

func (m *mockSessionStore) GetByID(_ context.Context, id string) (*models.StudySession, error) {
	return m.sessions[id], nil
}

func (m *mockSessionStore) GetByTutorAndID(_ context.Context, tutorEmail, id string) (*models.StudySession, error) {
	s := m.sessions[id]
	if s == nil || s.TutorEmail != tutorEmail {
		return nil, nil
	}
	return s, nil
}

func (m *mockSessionStore) ListAll(_ context.Context) ([]*models.StudySession, error) {
	sessions := make([]*models.StudySession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (m *mockSessionStore) ListApproved(_ context.Context, limit int) ([]*models.StudySession, error) {
	var approved []*models.StudySession
	for _, s := range m.sessions {
		if s.Status == models.SessionApproved && len(approved) < limit {
			approved = append(approved, s)
		}
	}
	return approved, nil
}

func (m *mockSessionStore) ListByTutor(_ context.Context, tutorEmail string) ([]*models.StudySession, error) {
	var sessions []*models.StudySession
	for _, s := range m.sessions {
		if s.TutorEmail == tutorEmail {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (m *mockSessionStore) UpsertByTutorAndID(_ context.Context, session *models.StudySession) (*models.WriteResult, error) {
	if existing := m.sessions[session.ID]; existing != nil && existing.TutorEmail == session.TutorEmail {
		m.sessions[session.ID] = session
		return models.Updated(session.ID, 1), nil
	}
	m.sessions[session.ID] = session
	return models.Inserted(session.ID), nil
}

func (m *mockSessionStore) DeleteByTutorAndID(_ context.Context, tutorEmail, id string) (int64, error) {
	if s := m.sessions[id]; s != nil && s.TutorEmail == tutorEmail {
		delete(m.sessions, id)
		return 1, nil
	}
	return 0, nil
}

// mockBookingStore upserts bookings keyed by (studentEmail, sessionID).
type mockBookingStore struct {
	bookings    map[string]*models.BookedSession
	upsertCalls int
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{bookings: make(map[string]*models.BookedSession)}
}

func (m *mockBookingStore) Upsert(_ context.Context, booking *models.BookedSession) (*models.WriteResult, error) {
	m.upsertCalls++
	key := booking.StudentEmail + "|" + booking.SessionID
	if _, exists := m.bookings[key]; exists {
		m.bookings[key] = booking
		return models.Updated(key, 1), nil
	}
	m.bookings[key] = booking
	return models.Inserted(key), nil
}

func (m *mockBookingStore) ListByStudent(_ context.Context, studentEmail string) ([]*models.BookedSession, error) {
	var bookings []*models.BookedSession
	for _, b := range m.bookings {
		if b.StudentEmail == studentEmail {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

// mockReviewStore upserts reviews keyed by (sessionID, studentEmail).
type mockReviewStore struct {
	reviews map[string]*models.Review
}

func newMockReviewStore() *mockReviewStore {
	return &mockReviewStore{reviews: make(map[string]*models.Review)}
}

func (m *mockReviewStore) Upsert(_ context.Context, review *models.Review) (*models.WriteResult, error) {
	key := review.SessionID + "|" + review.StudentEmail
	if _, exists := m.reviews[key]; exists {
		m.reviews[key] = review
		return models.Updated(key, 1), nil
	}
	m.reviews[key] = review
	return models.Inserted(key), nil
}

func (m *mockReviewStore) ListBySession(_ context.Context, sessionID string) ([]*models.Review, error) {
	var reviews []*models.Review
	for _, r := range m.reviews {
		if r.SessionID == sessionID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

// mockNoteStore is an in-memory NoteStore keyed by (studentEmail, id).
type mockNoteStore struct {
	notes  map[string]*models.Note
	nextID string
}

func newMockNoteStore() *mockNoteStore {
	return &mockNoteStore{notes: make(map[string]*models.Note), nextID: "note-id-1"}
}

func noteStoreKey(studentEmail, id string) string {
	return studentEmail + "|" + id
}

func (m *mockNoteStore) Insert(_ context.Context, note *models.Note) (string, error) {
	note.ID = m.nextID
	m.notes[noteStoreKey(note.StudentEmail, note.ID)] = note
	return note.ID, nil
}

func (m *mockNoteStore) GetByKey(_ context.Context, studentEmail, id string) (*models.Note, error) {
	return m.notes[noteStoreKey(studentEmail, id)], nil
}

func (m *mockNoteStore) ListByStudent(_ context.Context, studentEmail string) ([]*models.Note, error) {
	var notes []*models.Note
	for _, n := range m.notes {
		if n.StudentEmail == studentEmail {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (m *mockNoteStore) UpsertByKey(_ context.Context, note *models.Note) (*models.WriteResult, error) {
	key := noteStoreKey(note.StudentEmail, note.ID)
	if _, exists := m.notes[key]; exists {
		m.notes[key] = note
		return models.Updated(note.ID, 1), nil
	}
	m.notes[key] = note
	return models.Inserted(note.ID), nil
}

func (m *mockNoteStore) DeleteByKey(_ context.Context, studentEmail, id string) (int64, error) {
	key := noteStoreKey(studentEmail, id)
	if _, exists := m.notes[key]; exists {
		delete(m.notes, key)
		return 1, nil
	}
	return 0, nil
}

// newTestListingCache builds a disabled cache wired straight to the stores.
func newTestListingCache(sessions *mockSessionStore, users *mockUserStore) *cache.ListingCache {
	return cache.NewListingCache(
		func(ctx context.Context) ([]*models.StudySession, error) {
			return sessions.ListApproved(ctx, ApprovedSessionsLimit)
		},
		users.ListVerifiedTutors,
		60,
		true,
	)
}
