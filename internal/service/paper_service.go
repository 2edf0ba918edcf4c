package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-papers-api/internal/models"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
	"github.com/noah-isme/lms-papers-api/pkg/export"
)

type paperStore interface {
	Papers() []models.Paper
	Filtered() []models.Paper
	FindByID(id string) (models.Paper, bool)
	Add(paper models.Paper)
	Delete(id string)
	ApplyFilter(filter models.PaperFilter) []models.Paper
	IncrementDownloads(id string) (models.Paper, bool)
}

// CreatePaperRequest carries the fields an upload supplies; id, upload date
// and the download counter are synthesized.
type CreatePaperRequest struct {
	Title        string               `json:"title" validate:"required"`
	Description  string               `json:"description" validate:"required"`
	Category     models.PaperCategory `json:"category" validate:"required"`
	Subject      models.PaperSubject  `json:"subject" validate:"required"`
	Grade        models.PaperGrade    `json:"grade" validate:"required"`
	FileURL      string               `json:"fileUrl" validate:"required"`
	ThumbnailURL string               `json:"thumbnailUrl"`
}

// PaperService owns catalog workflows: listing, filtering, uploads, deletes
// and download counting.
type PaperService struct {
	store     paperStore
	cache     *CacheService
	metrics   *MetricsService
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaperService creates a paper service.
func NewPaperService(store paperStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PaperService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &PaperService{
		store:     store,
		cache:     cache,
		metrics:   metrics,
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
	if metrics != nil {
		metrics.SetCatalogSize(len(store.Papers()))
	}
	return svc
}

// List returns the current filtered view.
func (s *PaperService) List(ctx context.Context) []models.Paper {
	return s.store.Filtered()
}

// All returns the full catalog.
func (s *PaperService) All(ctx context.Context) []models.Paper {
	return s.store.Papers()
}

// Get returns a single catalog entry.
func (s *PaperService) Get(ctx context.Context, id string) (*models.Paper, error) {
	paper, ok := s.store.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "paper not found")
	}
	return &paper, nil
}

// Filter recomputes the filtered view from the full catalog. Omitted criteria
// are not applied; unknown values simply match nothing.
func (s *PaperService) Filter(ctx context.Context, filter models.PaperFilter) []models.Paper {
	return s.store.ApplyFilter(filter)
}

// Create adds a new paper to the catalog with a fresh id, today's date and a
// zero download counter. The entry is prepended to the filtered view as well,
// bypassing any active criteria, so uploaders see their paper immediately.
func (s *PaperService) Create(ctx context.Context, req CreatePaperRequest, uploadedBy string) (*models.Paper, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid paper payload")
	}
	if !req.Category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown paper category")
	}
	if !req.Subject.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown subject")
	}
	if !req.Grade.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grade")
	}

	paper := models.Paper{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Subject:      req.Subject,
		Grade:        req.Grade,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
		UploadDate:   time.Now().UTC().Format("2006-01-02"),
		UploadedBy:   uploadedBy,
		Downloads:    0,
	}
	s.store.Add(paper)
	s.afterMutation(ctx)

	s.logger.Info("paper added", zap.String("paper_id", paper.ID), zap.String("subject", string(paper.Subject)))
	return &paper, nil
}

// Delete removes the entry from the catalog and the filtered view. Absent
// ids are a benign no-op.
func (s *PaperService) Delete(ctx context.Context, id string) {
	s.store.Delete(id)
	s.afterMutation(ctx)
}

// IncrementDownloads bumps the counter for the given id in both collections.
// Absent ids are a benign no-op.
func (s *PaperService) IncrementDownloads(ctx context.Context, id string) {
	if _, ok := s.store.IncrementDownloads(id); ok {
		s.invalidateDashboard(ctx)
	}
}

// PaperDownload couples rendered placeholder content with its filename.
type PaperDownload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Download increments the counter and streams a generated placeholder PDF.
// Paper files are mocked; there is no stored content to serve.
func (s *PaperService) Download(ctx context.Context, id string) (*PaperDownload, error) {
	paper, ok := s.store.IncrementDownloads(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "paper not found")
	}
	s.invalidateDashboard(ctx)
	if s.metrics != nil {
		s.metrics.RecordPaperDownload()
	}

	content, err := s.pdf.RenderPaper(export.PaperDocument{
		Title:       paper.Title,
		Description: paper.Description,
		Category:    string(paper.Category),
		Subject:     string(paper.Subject),
		Grade:       string(paper.Grade),
		UploadedBy:  paper.UploadedBy,
		UploadDate:  paper.UploadDate,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render paper")
	}

	return &PaperDownload{
		FileName:    paper.ID + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (s *PaperService) afterMutation(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.SetCatalogSize(len(s.store.Papers()))
	}
	s.invalidateDashboard(ctx)
}

func (s *PaperService) invalidateDashboard(ctx context.Context) {
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "dashboard:*")
	}
}
