package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-papers-api/internal/middleware"
	"github.com/noah-isme/lms-papers-api/internal/models"
	"github.com/noah-isme/lms-papers-api/internal/service"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
)

type fakePaperSrv struct {
	filtered   []models.Paper
	all        []models.Paper
	paper      *models.Paper
	getErr     error
	created    *models.Paper
	createErr  error
	download   *service.PaperDownload
	dlErr      error
	deletedID  string
	lastFilter models.PaperFilter
	uploadedBy string
}

func (f *fakePaperSrv) List(context.Context) []models.Paper { return f.filtered }
func (f *fakePaperSrv) All(context.Context) []models.Paper  { return f.all }

func (f *fakePaperSrv) Get(context.Context, string) (*models.Paper, error) {
	return f.paper, f.getErr
}

func (f *fakePaperSrv) Filter(_ context.Context, filter models.PaperFilter) []models.Paper {
	f.lastFilter = filter
	return f.filtered
}

func (f *fakePaperSrv) Create(_ context.Context, _ service.CreatePaperRequest, uploadedBy string) (*models.Paper, error) {
	f.uploadedBy = uploadedBy
	return f.created, f.createErr
}

func (f *fakePaperSrv) Delete(_ context.Context, id string) { f.deletedID = id }

func (f *fakePaperSrv) Download(context.Context, string) (*service.PaperDownload, error) {
	return f.download, f.dlErr
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "1", Name: "Admin User", Role: models.RoleAdmin}
}

func TestPaperHandlerListFilteredView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakePaperSrv{
		filtered: []models.Paper{{ID: "1"}},
		all:      []models.Paper{{ID: "1"}, {ID: "2"}},
	}
	handler := NewPaperHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/papers", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Paper `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

func TestPaperHandlerListAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakePaperSrv{
		filtered: []models.Paper{{ID: "1"}},
		all:      []models.Paper{{ID: "1"}, {ID: "2"}},
	}
	handler := NewPaperHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/papers?all=true", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Paper `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestPaperHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPaperHandler(&fakePaperSrv{getErr: appErrors.Clone(appErrors.ErrNotFound, "paper not found")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/papers/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaperHandlerFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakePaperSrv{filtered: []models.Paper{{ID: "1"}}}
	handler := NewPaperHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/papers/filter",
		strings.NewReader(`{"category":"past_paper","grade":"10","search":"math"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Filter(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.CategoryPastPaper, fake.lastFilter.Category)
	assert.Equal(t, models.Grade10, fake.lastFilter.Grade)
	assert.Equal(t, "math", fake.lastFilter.Search)
}

func TestPaperHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakePaperSrv{created: &models.Paper{ID: "new"}}
	handler := NewPaperHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/papers",
		strings.NewReader(`{"title":"T","description":"D","category":"past_paper","subject":"physics","grade":"11","fileUrl":"/papers/t.pdf"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, adminClaims())

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Admin User", fake.uploadedBy)
}

func TestPaperHandlerCreateWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPaperHandler(&fakePaperSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/papers", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaperHandlerDeleteAlwaysNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakePaperSrv{}
	handler := NewPaperHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/papers/anything", nil)
	c.Params = gin.Params{{Key: "id", Value: "anything"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "anything", fake.deletedID)
}

func TestPaperHandlerDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPaperHandler(&fakePaperSrv{download: &service.PaperDownload{
		FileName:    "1.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4"),
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/papers/1/download", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Download(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "1.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}
