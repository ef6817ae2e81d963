package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studymate/studymate-api/internal/models"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

func TestBookingService_BookSession(t *testing.T) {
	bookings := newMockBookingStore()
	svc := NewBookingService(bookings, newMockSessionStore())

	result, err := svc.BookSession(context.Background(), &models.BookSessionRequest{
		StudentEmail: "student@example.com",
		SessionID:    "f6b9c1f2-1111-4222-8333-444455556666",
		TutorEmail:   "tutor@example.com",
		SessionTitle: "Algebra Basics",
	})

	require.NoError(t, err)
	assert.True(t, result.Ok)
	assert.Equal(t, int64(0), result.Matched)
	assert.Equal(t, 1, bookings.upsertCalls)
}

func TestBookingService_BookSession_RejectsElevatedRoles(t *testing.T) {
	for _, role := range []string{models.RoleAdmin, models.RoleTutor} {
		t.Run(role, func(t *testing.T) {
			bookings := newMockBookingStore()
			svc := NewBookingService(bookings, newMockSessionStore())

			result, err := svc.BookSession(context.Background(), &models.BookSessionRequest{
				StudentEmail: "someone@example.com",
				SessionID:    "f6b9c1f2-1111-4222-8333-444455556666",
				TutorEmail:   "tutor@example.com",
				SessionTitle: "Algebra Basics",
				Role:         role,
			})

			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
			assert.Nil(t, result)
			assert.Zero(t, bookings.upsertCalls)
		})
	}
}

func TestBookingService_BookSession_RebookingIsIdempotent(t *testing.T) {
	bookings := newMockBookingStore()
	svc := NewBookingService(bookings, newMockSessionStore())

	req := &models.BookSessionRequest{
		StudentEmail: "student@example.com",
		SessionID:    "f6b9c1f2-1111-4222-8333-444455556666",
		TutorEmail:   "tutor@example.com",
		SessionTitle: "Algebra Basics",
	}

	first, err := svc.BookSession(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.Matched)

	second, err := svc.BookSession(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Matched)

	listed, err := svc.StudentBookings(context.Background(), "student@example.com")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestBookingService_ViewBookedSession(t *testing.T) {
	sessions := newMockSessionStore(&models.StudySession{ID: "session-1", Title: "Algebra Basics"})
	svc := NewBookingService(newMockBookingStore(), sessions)

	session, err := svc.ViewBookedSession(context.Background(), "session-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "Algebra Basics", session.Title)

	missing, err := svc.ViewBookedSession(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
