package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-papers-api/internal/models"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
)

type fakeDashboardSrv struct {
	stats *models.DashboardStats
	err   error
}

func (f *fakeDashboardSrv) Stats(context.Context) (*models.DashboardStats, error) {
	return f.stats, f.err
}

func TestDashboardHandlerStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{stats: &models.DashboardStats{
		TotalPapers:    6,
		PastPapers:     3,
		ModelPapers:    3,
		TotalDownloads: 247,
		TotalStudents:  5,
		ActiveStudents: 5,
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)

	handler.Stats(c)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.DashboardStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Data.TotalPapers)
	assert.Equal(t, 247, body.Data.TotalDownloads)
}

func TestDashboardHandlerStatsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.ErrInternal})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
