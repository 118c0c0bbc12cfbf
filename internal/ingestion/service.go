package ingestion

import (
	"github.com/gin-gonic/gin"

	"github.com/aevon-lab/calseries/internal/catalog"
)

type Service struct {
	catalog          *catalog.Catalog
	maxBodySizeBytes int
}

func NewService(cat *catalog.Catalog, maxBodySizeMB int) *Service {
	if cat == nil {
		panic("ingestion: catalog must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		catalog:          cat,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the series write routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/series", s.CreateHandler)
	r.DELETE("/v1/series/:name", s.DeleteHandler)
}
