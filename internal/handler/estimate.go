package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

// Estimator is the prediction flow served by EstimateHandler.
type Estimator interface {
	Predict(ctx context.Context, in model.PropertyRecord) (*model.PredictResponse, error)
	Predictions(ctx context.Context, filter model.PredictionFilter) (*model.PredictionsResponse, error)
	DeletePredictions(ctx context.Context, n int, newest bool) (int64, error)
	DeletePrediction(ctx context.Context, id int64) error
}

// EstimateHandler handles price estimation and prediction history requests
type EstimateHandler struct {
	estimator    Estimator
	defaultLimit int
	logger       *zap.Logger
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimator Estimator, defaultLimit int, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimator:    estimator,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Predict handles POST /api/v1/predict
func (h *EstimateHandler) Predict(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidInput})
		return
	}

	in, err := propertyFromFields(fields)
	if err != nil {
		h.logger.Info("Prediction input rejected", zap.Error(err))
		writeError(c, h.logger, err)
		return
	}

	resp, err := h.estimator.Predict(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Predictions handles GET /api/v1/predictions
func (h *EstimateHandler) Predictions(c *gin.Context) {
	filter := model.PredictionFilter{
		Limit:     h.defaultLimit,
		RequestID: c.Query("request_id"),
	}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, h.logger, fmt.Errorf("%w: limit", apperrors.ErrInvalidArgument))
			return
		}
		filter.Limit = n
	}
	if v := c.Query("price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(c, h.logger, fmt.Errorf("%w: price", apperrors.ErrInvalidArgument))
			return
		}
		filter.Price = &p
	}

	resp, err := h.estimator.Predictions(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeletePredictions handles DELETE /api/v1/predictions?count=N&newest=true
func (h *EstimateHandler) DeletePredictions(c *gin.Context) {
	n, err := strconv.Atoi(c.Query("count"))
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: count", apperrors.ErrInvalidArgument))
		return
	}
	newest := false
	if v := c.Query("newest"); v != "" {
		if newest, err = strconv.ParseBool(v); err != nil {
			writeError(c, h.logger, fmt.Errorf("%w: newest", apperrors.ErrInvalidArgument))
			return
		}
	}

	deleted, err := h.estimator.DeletePredictions(c.Request.Context(), n, newest)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// DeletePrediction handles DELETE /api/v1/predictions/:id
func (h *EstimateHandler) DeletePrediction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: id", apperrors.ErrInvalidArgument))
		return
	}

	if err := h.estimator.DeletePrediction(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
