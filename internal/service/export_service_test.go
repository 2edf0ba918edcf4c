package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-papers-api/internal/models"
	"github.com/noah-isme/lms-papers-api/internal/repository"
	"github.com/noah-isme/lms-papers-api/pkg/jobs"
	"github.com/noah-isme/lms-papers-api/pkg/storage"
)

func newTestExportService(t *testing.T) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Minute)
	return NewExportService(repository.NewExportStore(), repository.NewPaperStore(), files, signer, ExportConfig{}, nil)
}

func TestExportServiceRequestQueuesJob(t *testing.T) {
	svc := newTestExportService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	job, err := svc.Request(ctx, models.ExportCSV, "Admin User")
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.ExportCSV, job.Format)
	assert.Equal(t, "Admin User", job.RequestedBy)

	// Workers pick the job up shortly after.
	require.Eventually(t, func() bool {
		status, err := svc.Status(ctx, job.ID)
		return err == nil && status.Status == models.ExportCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestExportServiceRequestInvalidFormat(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.Request(context.Background(), "xlsx", "Admin User")
	assert.Error(t, err)
}

func TestExportServiceStatusUnknown(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.Status(context.Background(), "missing")
	assert.Error(t, err)
}

func TestExportServiceProcessCSV(t *testing.T) {
	svc := newTestExportService(t)
	ctx := context.Background()

	record := models.ExportJob{ID: "exp-1", Format: models.ExportCSV, Status: models.ExportPending, CreatedAt: time.Now().UTC()}
	svc.store.Create(record)

	require.NoError(t, svc.process(ctx, jobs.Job{ID: record.ID, Type: "catalog_export"}))

	job, err := svc.Status(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Contains(t, job.DownloadURL, "/api/v1/exports/download?token=")

	download, err := svc.Download(ctx, strings.TrimPrefix(job.DownloadURL, "/api/v1/exports/download?token="))
	require.NoError(t, err)
	assert.Equal(t, "text/csv", download.ContentType)

	content := string(download.Content)
	assert.Contains(t, content, "Mathematics Grade 10 Past Paper 2024")
	assert.Contains(t, content, "Downloads")
}

func TestExportServiceProcessPDF(t *testing.T) {
	svc := newTestExportService(t)
	ctx := context.Background()

	record := models.ExportJob{ID: "exp-2", Format: models.ExportPDF, Status: models.ExportPending, CreatedAt: time.Now().UTC()}
	svc.store.Create(record)

	require.NoError(t, svc.process(ctx, jobs.Job{ID: record.ID, Type: "catalog_export"}))

	job, err := svc.Status(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, models.ExportCompleted, job.Status)

	download, err := svc.Download(ctx, strings.TrimPrefix(job.DownloadURL, "/api/v1/exports/download?token="))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", download.ContentType)
	assert.True(t, bytes.HasPrefix(download.Content, []byte("%PDF")))
}

func TestExportServiceDownloadBadToken(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.Download(context.Background(), "tampered.token.value.sig")
	assert.Error(t, err)
}

func TestExportServiceProcessUnknownJobIsNoOp(t *testing.T) {
	svc := newTestExportService(t)
	assert.NoError(t, svc.process(context.Background(), jobs.Job{ID: "missing"}))
}
