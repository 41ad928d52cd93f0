package analytics

import (
	"context"
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/fleet-analytics/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all analytics API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1/analytics")
	g.GET("/efficiency", handleQuery("Failed to compute fuel efficiency", s.Efficiency))
	g.GET("/fraud", handleQuery("Failed to compute fraud flags", s.Fraud))
	g.GET("/cost-trends", handleQuery("Failed to compute cost trends", s.CostTrends))
	g.GET("/actions", handleQuery("Failed to compute actions", s.Actions))
	g.GET("/maintenance", handleQuery("Failed to compute maintenance history", s.MaintenanceHistory))
	g.GET("/expenses", handleQuery("Failed to compute expenses", s.Expenses))
	g.GET("/penalties", handleQuery("Failed to compute traffic penalties", s.Penalties))
	g.GET("/roster", handleQuery("Failed to compute vehicle roster", s.Roster))
	g.GET("/summary", s.HandleSummary)
}

// handleQuery binds the shared query parameters and maps service errors to
// HTTP statuses.
func handleQuery[T any](failure string, fn func(ctx context.Context, q Query) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q Query
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid query parameters",
				Details:   err.Error(),
			})
			return
		}

		resp, err := fn(c.Request.Context(), q)
		if err != nil {
			writeError(c, failure, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleSummary handles GET /v1/analytics/summary
func (s *Service) HandleSummary(c *gin.Context) {
	resp, err := s.Summary(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to compute fleet summary", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func writeError(c *gin.Context, failure string, err error) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid analytics query",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   failure,
		Details:   err.Error(),
	})
}
