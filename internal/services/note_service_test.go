package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studymate/studymate-api/internal/models"
)

func TestNoteService_CreateAndGet(t *testing.T) {
	svc := NewNoteService(newMockNoteStore())

	result, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{
		StudentEmail: "student@example.com",
		Title:        "Chapter 3",
		Description:  "Quadratic equations",
	})
	require.NoError(t, err)
	assert.True(t, result.Ok)
	require.NotEmpty(t, result.ID)

	note, err := svc.GetNote(context.Background(), "student@example.com", result.ID)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Chapter 3", note.Title)
	assert.NotZero(t, note.Timestamp)
}

func TestNoteService_GetNote_WrongOwnerIsNil(t *testing.T) {
	svc := NewNoteService(newMockNoteStore())

	result, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{
		StudentEmail: "student@example.com",
		Title:        "Private",
	})
	require.NoError(t, err)

	note, err := svc.GetNote(context.Background(), "other@example.com", result.ID)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteService_UpdateNote_OwnerFromRoute(t *testing.T) {
	svc := NewNoteService(newMockNoteStore())

	created, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{
		StudentEmail: "student@example.com",
		Title:        "Draft",
	})
	require.NoError(t, err)

	result, err := svc.UpdateNote(context.Background(), "student@example.com", created.ID, &models.UpdateNoteRequest{
		Title:       "Final",
		Description: "Now with content",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Matched)

	note, err := svc.GetNote(context.Background(), "student@example.com", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", note.Title)
	assert.Equal(t, "student@example.com", note.StudentEmail)
}

func TestNoteService_DeleteThenGet(t *testing.T) {
	svc := NewNoteService(newMockNoteStore())

	created, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{
		StudentEmail: "student@example.com",
		Title:        "Ephemeral",
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteNote(context.Background(), "student@example.com", created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.Matched)

	// Reading the deleted key is not an error, just an empty result
	note, err := svc.GetNote(context.Background(), "student@example.com", created.ID)
	require.NoError(t, err)
	assert.Nil(t, note)

	// Deleting again is still not an error
	again, err := svc.DeleteNote(context.Background(), "student@example.com", created.ID)
	require.NoError(t, err)
	assert.Zero(t, again.Matched)
}
