package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

// Client-facing error messages.
const (
	MsgNoData          = "No data found"
	MsgDataProcessing  = "Data processing error"
	MsgInvalidInput    = "Invalid input"
	MsgInternalFailure = "Internal server error"
)

// errInputCoercion marks request fields that are missing or of the wrong kind.
var errInputCoercion = errors.New("input coercion failed")

// writeError maps a service error onto a status code and body. Internal
// causes are logged, never returned.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, model.ValidationResponse{ErrorList: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": MsgNoData})
	case errors.Is(err, apperrors.ErrScoringFailed), errors.Is(err, errInputCoercion):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": MsgDataProcessing})
	case errors.Is(err, apperrors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidInput})
	default:
		logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgInternalFailure})
	}
}
