package handler

import "github.com/gin-gonic/gin"

// Register mounts the API routes on group.
func Register(group *gin.RouterGroup, estimate *EstimateHandler, dataset *DatasetHandler) {
	group.POST("/predict", estimate.Predict)
	group.GET("/predictions", estimate.Predictions)
	group.DELETE("/predictions", estimate.DeletePredictions)
	group.DELETE("/predictions/:id", estimate.DeletePrediction)

	group.GET("/dataset", dataset.List)
	group.POST("/dataset/search", dataset.Search)
	group.GET("/dataset/columns/:column", dataset.Column)
	group.GET("/statistics", dataset.Statistics)
	group.GET("/ranges", dataset.Ranges)
	group.POST("/ranges/refresh", dataset.RefreshRanges)
	group.GET("/vocabulary", dataset.Vocabulary)
}
