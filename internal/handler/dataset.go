package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estimator/internal/model"
	"estimator/internal/validation"
)

// Dataset is the dataset view served by DatasetHandler.
type Dataset interface {
	List(ctx context.Context) (*model.DatasetResponse, error)
	Search(ctx context.Context, query string) (*model.SearchResponse, error)
	Column(ctx context.Context, column string) (*model.ColumnResponse, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
	Ranges(ctx context.Context) (model.Ranges, error)
	RefreshRanges(ctx context.Context) (model.Ranges, error)
}

// DatasetHandler handles dataset-related HTTP requests
type DatasetHandler struct {
	dataset Dataset
	logger  *zap.Logger
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(dataset Dataset, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{
		dataset: dataset,
		logger:  logger,
	}
}

// List handles GET /api/v1/dataset
func (h *DatasetHandler) List(c *gin.Context) {
	resp, err := h.dataset.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search handles POST /api/v1/dataset/search
func (h *DatasetHandler) Search(c *gin.Context) {
	var req model.DatasetSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidInput})
		return
	}

	resp, err := h.dataset.Search(c.Request.Context(), req.Query)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Column handles GET /api/v1/dataset/columns/:column
func (h *DatasetHandler) Column(c *gin.Context) {
	resp, err := h.dataset.Column(c.Request.Context(), c.Param("column"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Statistics handles GET /api/v1/statistics
func (h *DatasetHandler) Statistics(c *gin.Context) {
	stats, err := h.dataset.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Ranges handles GET /api/v1/ranges
func (h *DatasetHandler) Ranges(c *gin.Context) {
	r, err := h.dataset.Ranges(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// RefreshRanges handles POST /api/v1/ranges/refresh
func (h *DatasetHandler) RefreshRanges(c *gin.Context) {
	r, err := h.dataset.RefreshRanges(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Vocabulary handles GET /api/v1/vocabulary
func (h *DatasetHandler) Vocabulary(c *gin.Context) {
	out := make(map[string][]string, len(model.CategoricalColumns))
	for _, col := range model.CategoricalColumns {
		out[col] = validation.Vocabulary(col)
	}
	c.JSON(http.StatusOK, out)
}
