package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-papers-api/internal/models"
	"github.com/noah-isme/lms-papers-api/internal/service"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
	"github.com/noah-isme/lms-papers-api/pkg/response"
)

type exportService interface {
	Request(ctx context.Context, format models.ExportFormat, requestedBy string) (*models.ExportJob, error)
	Status(ctx context.Context, id string) (*models.ExportJob, error)
	Download(ctx context.Context, token string) (*service.ExportDownload, error)
}

// ExportHandler manages asynchronous catalog export endpoints.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

type exportRequest struct {
	Format models.ExportFormat `json:"format" binding:"required"`
}

// Request godoc
// @Summary Request catalog export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body exportRequest true "Export format"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Request(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export request"))
		return
	}

	requestedBy := ""
	if claims := claimsFromContext(c); claims != nil {
		requestedBy = claims.Name
	}

	job, err := h.service.Request(c.Request.Context(), req.Format, requestedBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// Status godoc
// @Summary Export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Export id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	job, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download completed export
// @Tags Exports
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /exports/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing download token"))
		return
	}

	download, err := h.service.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+download.FileName+`"`)
	c.Data(http.StatusOK, download.ContentType, download.Content)
}
