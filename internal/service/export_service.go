package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-papers-api/internal/models"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
	"github.com/noah-isme/lms-papers-api/pkg/export"
	"github.com/noah-isme/lms-papers-api/pkg/jobs"
	"github.com/noah-isme/lms-papers-api/pkg/storage"
)

type exportStore interface {
	Create(job models.ExportJob)
	Get(id string) (models.ExportJob, bool)
	Update(job models.ExportJob)
}

// ExportConfig tunes the background export pipeline.
type ExportConfig struct {
	WorkerConcurrency int
	WorkerRetries     int
}

// ExportService renders catalog exports asynchronously on an in-memory job
// queue and serves the results through signed download tokens.
type ExportService struct {
	store  exportStore
	papers paperStore
	files  *storage.LocalStorage
	signer *storage.SignedURLSigner
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewExportService wires the export pipeline.
func NewExportService(store exportStore, papers paperStore, files *storage.LocalStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		store:  store,
		papers: papers,
		files:  files,
		signer: signer,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
	s.queue = jobs.NewQueue("catalog-exports", s.process, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the export workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Request queues a new catalog export and returns the pending job.
func (s *ExportService) Request(ctx context.Context, format models.ExportFormat, requestedBy string) (*models.ExportJob, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	job := models.ExportJob{
		ID:          uuid.NewString(),
		Format:      format,
		Status:      models.ExportPending,
		RequestedBy: requestedBy,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.Create(job)

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "catalog_export"}); err != nil {
		job.Status = models.ExportFailed
		job.Error = "export queue unavailable"
		s.store.Update(job)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}

	return &job, nil
}

// Status returns the current job state, including a signed download URL once
// the export completed.
func (s *ExportService) Status(ctx context.Context, id string) (*models.ExportJob, error) {
	job, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	return &job, nil
}

// ExportDownload couples the export content with response metadata.
type ExportDownload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Download validates the signed token and returns the rendered export.
func (s *ExportService) Download(ctx context.Context, token string) (*ExportDownload, error) {
	exportID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}

	job, ok := s.store.Get(exportID)
	if !ok || job.Status != models.ExportCompleted {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}

	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file missing")
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file")
	}

	return &ExportDownload{
		FileName:    job.FileName,
		ContentType: contentTypeFor(job.Format),
		Content:     content,
	}, nil
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	record, ok := s.store.Get(job.ID)
	if !ok {
		return nil
	}

	record.Status = models.ExportProcessing
	s.store.Update(record)

	data := catalogDataset(s.papers.Papers())

	var rendered []byte
	var err error
	switch record.Format {
	case models.ExportPDF:
		rendered, err = s.pdf.Render(data, "Exam Paper Catalog")
	default:
		rendered, err = s.csv.Render(data)
	}
	if err != nil {
		record.Status = models.ExportFailed
		record.Error = err.Error()
		s.store.Update(record)
		return fmt.Errorf("render export %s: %w", record.ID, err)
	}

	filename := fmt.Sprintf("%s.%s", record.ID, record.Format)
	if _, err := s.files.Save(filename, rendered); err != nil {
		record.Status = models.ExportFailed
		record.Error = err.Error()
		s.store.Update(record)
		return fmt.Errorf("store export %s: %w", record.ID, err)
	}

	token, _, err := s.signer.Generate(record.ID, filename)
	if err != nil {
		record.Status = models.ExportFailed
		record.Error = err.Error()
		s.store.Update(record)
		return fmt.Errorf("sign export %s: %w", record.ID, err)
	}

	now := time.Now().UTC()
	record.Status = models.ExportCompleted
	record.FileName = filename
	record.CompletedAt = &now
	record.DownloadURL = "/api/v1/exports/download?token=" + token
	s.store.Update(record)

	s.logger.Info("catalog export completed", zap.String("export_id", record.ID), zap.String("format", string(record.Format)))
	return nil
}

func catalogDataset(papers []models.Paper) export.Dataset {
	headers := []string{"ID", "Title", "Category", "Subject", "Grade", "Upload Date", "Uploaded By", "Downloads"}
	rows := make([]map[string]string, 0, len(papers))
	for _, p := range papers {
		rows = append(rows, map[string]string{
			"ID":          p.ID,
			"Title":       p.Title,
			"Category":    string(p.Category),
			"Subject":     string(p.Subject),
			"Grade":       string(p.Grade),
			"Upload Date": p.UploadDate,
			"Uploaded By": p.UploadedBy,
			"Downloads":   fmt.Sprintf("%d", p.Downloads),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func contentTypeFor(format models.ExportFormat) string {
	switch format {
	case models.ExportPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}
