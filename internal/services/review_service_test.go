package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studymate/studymate-api/internal/models"
)

func TestReviewService_SubmitReview(t *testing.T) {
	svc := NewReviewService(newMockReviewStore())

	result, err := svc.SubmitReview(context.Background(), &models.SubmitReviewRequest{
		SessionID:    "session-1",
		StudentEmail: "student@example.com",
		StudentName:  "Test Student",
		Rating:       5,
		Comment:      "Great session",
	})

	require.NoError(t, err)
	assert.True(t, result.Ok)
	assert.Equal(t, int64(0), result.Matched)
}

func TestReviewService_ResubmissionReplaces(t *testing.T) {
	svc := NewReviewService(newMockReviewStore())

	_, err := svc.SubmitReview(context.Background(), &models.SubmitReviewRequest{
		SessionID:    "session-1",
		StudentEmail: "student@example.com",
		Rating:       2,
		Comment:      "Too fast",
	})
	require.NoError(t, err)

	second, err := svc.SubmitReview(context.Background(), &models.SubmitReviewRequest{
		SessionID:    "session-1",
		StudentEmail: "student@example.com",
		Rating:       4,
		Comment:      "Better on rewatch",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Matched)

	reviews, err := svc.SessionReviews(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "Better on rewatch", reviews[0].Comment)
}

func TestReviewService_SessionReviews_ScopedToSession(t *testing.T) {
	svc := NewReviewService(newMockReviewStore())

	for _, req := range []*models.SubmitReviewRequest{
		{SessionID: "session-1", StudentEmail: "a@example.com", Rating: 5},
		{SessionID: "session-1", StudentEmail: "b@example.com", Rating: 3},
		{SessionID: "session-2", StudentEmail: "a@example.com", Rating: 1},
	} {
		_, err := svc.SubmitReview(context.Background(), req)
		require.NoError(t, err)
	}

	reviews, err := svc.SessionReviews(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
