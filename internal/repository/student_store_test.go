package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

func TestStudentStoreSeedsRoster(t *testing.T) {
	store := NewStudentStore()
	assert.Len(t, store.List(models.StudentFilter{}), 5)
}

func TestStudentStoreListFilters(t *testing.T) {
	store := NewStudentStore()

	grade10 := store.List(models.StudentFilter{Grade: models.Grade10})
	require.Len(t, grade10, 2)
	assert.Equal(t, "John Doe", grade10[0].Name)
	assert.Equal(t, "David Lee", grade10[1].Name)

	byName := store.List(models.StudentFilter{Search: "jane"})
	require.Len(t, byName, 1)
	assert.Equal(t, "2", byName[0].ID)

	byEmail := store.List(models.StudentFilter{Search: "michael.j@"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, "3", byEmail[0].ID)

	combined := store.List(models.StudentFilter{Grade: models.Grade10, Search: "lee"})
	require.Len(t, combined, 1)
	assert.Equal(t, "5", combined[0].ID)
}

func TestStudentStoreUpdate(t *testing.T) {
	store := NewStudentStore()

	student, ok := store.FindByID("4")
	require.True(t, ok)
	student.Status = models.StudentInactive

	assert.True(t, store.Update(student))
	updated, ok := store.FindByID("4")
	require.True(t, ok)
	assert.Equal(t, models.StudentInactive, updated.Status)

	assert.False(t, store.Update(models.Student{ID: "missing"}))
}

func TestStudentStoreAddAndDelete(t *testing.T) {
	store := NewStudentStore()

	store.Add(models.Student{ID: "6", Name: "Sarah Brown", Email: "sarah.b@example.com", Grade: models.Grade9, Status: models.StudentActive})
	assert.Len(t, store.List(models.StudentFilter{}), 6)

	store.Delete("6")
	_, ok := store.FindByID("6")
	assert.False(t, ok)

	store.Delete("missing")
	assert.Len(t, store.List(models.StudentFilter{}), 5)
}
