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

type paperService interface {
	List(ctx context.Context) []models.Paper
	All(ctx context.Context) []models.Paper
	Get(ctx context.Context, id string) (*models.Paper, error)
	Filter(ctx context.Context, filter models.PaperFilter) []models.Paper
	Create(ctx context.Context, req service.CreatePaperRequest, uploadedBy string) (*models.Paper, error)
	Delete(ctx context.Context, id string)
	Download(ctx context.Context, id string) (*service.PaperDownload, error)
}

// PaperHandler manages catalog HTTP endpoints.
type PaperHandler struct {
	service paperService
}

// NewPaperHandler constructs the handler.
func NewPaperHandler(svc paperService) *PaperHandler {
	return &PaperHandler{service: svc}
}

// List godoc
// @Summary List papers
// @Description Returns the current filtered view of the catalog
// @Tags Papers
// @Produce json
// @Param all query bool false "Return the full catalog instead of the filtered view"
// @Success 200 {object} response.Envelope
// @Router /papers [get]
func (h *PaperHandler) List(c *gin.Context) {
	if c.Query("all") == "true" {
		response.JSON(c, http.StatusOK, h.service.All(c.Request.Context()), nil)
		return
	}
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), nil)
}

// Get godoc
// @Summary Get paper
// @Tags Papers
// @Produce json
// @Param id path string true "Paper id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /papers/{id} [get]
func (h *PaperHandler) Get(c *gin.Context) {
	paper, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, paper, nil)
}

// Filter godoc
// @Summary Filter papers
// @Description Recomputes the filtered view from the full catalog; omitted criteria match everything
// @Tags Papers
// @Accept json
// @Produce json
// @Param payload body models.PaperFilter true "Filter criteria"
// @Success 200 {object} response.Envelope
// @Router /papers/filter [post]
func (h *PaperHandler) Filter(c *gin.Context) {
	var filter models.PaperFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter payload"))
		return
	}
	response.JSON(c, http.StatusOK, h.service.Filter(c.Request.Context(), filter), nil)
}

// Create godoc
// @Summary Upload paper
// @Description Adds a catalog entry; the file itself is mocked
// @Tags Papers
// @Accept json
// @Produce json
// @Param payload body service.CreatePaperRequest true "Paper payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /papers [post]
func (h *PaperHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid paper payload"))
		return
	}

	paper, err := h.service.Create(c.Request.Context(), req, claims.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, paper)
}

// Delete godoc
// @Summary Delete paper
// @Description Removes the entry from catalog and filtered view; unknown ids are a no-op
// @Tags Papers
// @Produce json
// @Param id path string true "Paper id"
// @Success 204 {object} response.Envelope
// @Router /papers/{id} [delete]
func (h *PaperHandler) Delete(c *gin.Context) {
	h.service.Delete(c.Request.Context(), c.Param("id"))
	response.NoContent(c)
}

// Download godoc
// @Summary Download paper
// @Description Increments the download counter and streams a generated placeholder PDF
// @Tags Papers
// @Produce application/pdf
// @Param id path string true "Paper id"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /papers/{id}/download [get]
func (h *PaperHandler) Download(c *gin.Context) {
	download, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+download.FileName)
	c.Data(http.StatusOK, download.ContentType, download.Content)
}
