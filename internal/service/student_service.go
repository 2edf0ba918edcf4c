package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-papers-api/internal/models"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
)

type studentStore interface {
	List(filter models.StudentFilter) []models.Student
	FindByID(id string) (models.Student, bool)
	Add(student models.Student)
	Update(student models.Student) bool
	Delete(id string)
}

// CreateStudentRequest captures fields for enrolling a student.
type CreateStudentRequest struct {
	Name         string            `json:"name" validate:"required"`
	Email        string            `json:"email" validate:"required"`
	Grade        models.PaperGrade `json:"grade" validate:"required"`
	ProfileImage string            `json:"profileImage"`
}

// UpdateStudentRequest modifies roster fields.
type UpdateStudentRequest struct {
	Name         string               `json:"name" validate:"required"`
	Email        string               `json:"email" validate:"required"`
	Grade        models.PaperGrade    `json:"grade" validate:"required"`
	ProfileImage string               `json:"profileImage"`
	Status       models.StudentStatus `json:"status"`
}

// StudentService handles roster workflows for the admin dashboard.
type StudentService struct {
	store     studentStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService creates a student service.
func NewStudentService(store studentStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: store, cache: cache, validator: validate, logger: logger}
}

// List returns roster entries matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) []models.Student {
	return s.store.List(filter)
}

// Create enrolls a new student with today's date and active status.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !req.Grade.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grade")
	}

	student := models.Student{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Grade:          req.Grade,
		EnrollmentDate: time.Now().UTC().Format("2006-01-02"),
		ProfileImage:   req.ProfileImage,
		Status:         models.StudentActive,
	}
	s.store.Add(student)
	s.invalidateDashboard(ctx)
	return &student, nil
}

// Update modifies an existing roster entry.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !req.Grade.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grade")
	}

	student, ok := s.store.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	student.Name = req.Name
	student.Email = req.Email
	student.Grade = req.Grade
	if req.ProfileImage != "" {
		student.ProfileImage = req.ProfileImage
	}
	if req.Status != "" {
		student.Status = req.Status
	}

	if !s.store.Update(student) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.invalidateDashboard(ctx)
	return &student, nil
}

// Delete removes a roster entry. Absent ids are a benign no-op.
func (s *StudentService) Delete(ctx context.Context, id string) {
	s.store.Delete(id)
	s.invalidateDashboard(ctx)
}

func (s *StudentService) invalidateDashboard(ctx context.Context) {
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "dashboard:*")
	}
}
