package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studymate/studymate-api/internal/models"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

func newSessionServiceFixture(users *mockUserStore, sessions *mockSessionStore) *SessionService {
	return NewSessionService(sessions, users, newTestListingCache(sessions, users))
}

func TestSessionService_CreateSession_StoredTutor(t *testing.T) {
	users := newMockUserStore(&models.User{
		Email: "tutor@example.com",
		Name:  "A Tutor",
		Role:  models.RoleTutor,
	})
	sessions := newMockSessionStore()
	svc := newSessionServiceFixture(users, sessions)

	result, err := svc.CreateSession(context.Background(), "tutor@example.com", &models.CreateSessionRequest{
		Title:  "Algebra Basics",
		Status: models.SessionPending,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Ok)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 1, sessions.insertCalls)

	created, err := svc.GetSession(context.Background(), result.ID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "tutor@example.com", created.TutorEmail)
	// Tutor name backfilled from the stored record
	assert.Equal(t, "A Tutor", created.TutorName)
}

func TestSessionService_CreateSession_NotATutor(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
	}{
		{name: "unknown email", user: nil},
		{name: "student record", user: &models.User{Email: "x@example.com", Role: models.RoleStudent}},
		{name: "admin record", user: &models.User{Email: "x@example.com", Role: models.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newMockUserStore()
			if tt.user != nil {
				users.users[tt.user.Email] = tt.user
			}
			sessions := newMockSessionStore()
			svc := newSessionServiceFixture(users, sessions)

			result, err := svc.CreateSession(context.Background(), "x@example.com", &models.CreateSessionRequest{
				Title: "Should Not Exist",
			})

			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
			assert.Nil(t, result)
			// Nothing written
			assert.Zero(t, sessions.insertCalls)
		})
	}
}

func TestSessionService_ApprovedSessions_Capped(t *testing.T) {
	users := newMockUserStore()
	sessions := newMockSessionStore()
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("approved-%d", i)
		sessions.sessions[id] = &models.StudySession{
			ID:     id,
			Status: models.SessionApproved,
		}
	}
	sessions.sessions["pending-1"] = &models.StudySession{ID: "pending-1", Status: models.SessionPending}
	svc := newSessionServiceFixture(users, sessions)

	approved, err := svc.ApprovedSessions(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(approved), ApprovedSessionsLimit)
	for _, s := range approved {
		assert.Equal(t, models.SessionApproved, s.Status)
	}
}

func TestSessionService_GetTutorSession_OwnershipFilter(t *testing.T) {
	users := newMockUserStore()
	sessions := newMockSessionStore(&models.StudySession{
		ID:         "session-1",
		TutorEmail: "owner@example.com",
		Title:      "Owned",
	})
	svc := newSessionServiceFixture(users, sessions)

	owned, err := svc.GetTutorSession(context.Background(), "owner@example.com", "session-1")
	require.NoError(t, err)
	require.NotNil(t, owned)
	assert.Equal(t, "Owned", owned.Title)

	// Someone else's session reads as missing
	foreign, err := svc.GetTutorSession(context.Background(), "other@example.com", "session-1")
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestSessionService_UpdateTutorSession_Upserts(t *testing.T) {
	users := newMockUserStore()
	sessions := newMockSessionStore(&models.StudySession{
		ID:         "session-1",
		TutorEmail: "owner@example.com",
		Title:      "Before",
	})
	svc := newSessionServiceFixture(users, sessions)

	result, err := svc.UpdateTutorSession(context.Background(), "owner@example.com", "session-1", &models.CreateSessionRequest{
		Title: "After",
	})
	require.NoError(t, err)
	assert.True(t, result.Ok)
	assert.Equal(t, int64(1), result.Matched)

	updated, err := svc.GetSession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
}

func TestSessionService_DeleteTutorSession_MissingIsNotAnError(t *testing.T) {
	users := newMockUserStore()
	sessions := newMockSessionStore()
	svc := newSessionServiceFixture(users, sessions)

	result, err := svc.DeleteTutorSession(context.Background(), "owner@example.com", "never-existed")
	require.NoError(t, err)
	assert.True(t, result.Ok)
	assert.Zero(t, result.Matched)
}
