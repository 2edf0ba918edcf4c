package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-papers-api/internal/models"
	"github.com/noah-isme/lms-papers-api/internal/repository"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
)

func newTestStudentService(t *testing.T) (*StudentService, *repository.StudentStore) {
	t.Helper()
	store := repository.NewStudentStore()
	return NewStudentService(store, nil, nil, nil), store
}

func TestStudentServiceCreate(t *testing.T) {
	svc, store := newTestStudentService(t)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:  "Sarah Brown",
		Email: "sarah.b@example.com",
		Grade: models.Grade9,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, student.ID)
	assert.Equal(t, models.StudentActive, student.Status)
	assert.NotEmpty(t, student.EnrollmentDate)
	assert.Len(t, store.List(models.StudentFilter{}), 6)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc, _ := newTestStudentService(t)

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "No Email"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateStudentRequest{
		Name:  "Bad Grade",
		Email: "bad@example.com",
		Grade: "13",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestStudentServiceUpdate(t *testing.T) {
	svc, store := newTestStudentService(t)

	updated, err := svc.Update(context.Background(), "2", UpdateStudentRequest{
		Name:   "Jane Smith-Jones",
		Email:  "jane.smith@example.com",
		Grade:  models.Grade12,
		Status: models.StudentInactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith-Jones", updated.Name)
	assert.Equal(t, models.Grade12, updated.Grade)
	assert.Equal(t, models.StudentInactive, updated.Status)

	// Omitted profile image keeps the existing one.
	fresh, ok := store.FindByID("2")
	require.True(t, ok)
	assert.NotEmpty(t, fresh.ProfileImage)
}

func TestStudentServiceUpdateAbsent(t *testing.T) {
	svc, _ := newTestStudentService(t)

	_, err := svc.Update(context.Background(), "missing", UpdateStudentRequest{
		Name:  "Ghost",
		Email: "ghost@example.com",
		Grade: models.Grade9,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentServiceDelete(t *testing.T) {
	svc, store := newTestStudentService(t)

	svc.Delete(context.Background(), "1")
	assert.Len(t, store.List(models.StudentFilter{}), 4)

	svc.Delete(context.Background(), "missing")
	assert.Len(t, store.List(models.StudentFilter{}), 4)
}
