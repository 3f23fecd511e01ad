package pipeline

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/analytics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/snapshot"
)

// Register registers sales pipeline routes
func Register(g *echo.Group) {
	g.GET("", Pipeline)
}

// PipelineResponse is the response body for the sales pipeline
type PipelineResponse struct {
	Summary models.PipelineSummary `json:"summary"`
	Entries []models.PipelineEntry `json:"entries"`
}

// Pipeline returns the sales pipeline summary and entries
func Pipeline(c echo.Context) error {
	ctx := c.Request().Context()

	filter := analytics.PipelineFilter{
		Search:      c.QueryParam("search"),
		SalesStatus: c.QueryParam("sales_status"),
		Followup:    c.QueryParam("followup"),
		StartDate:   c.QueryParam("start_date"),
		EndDate:     c.QueryParam("end_date"),
	}
	if tier := c.QueryParam("tier"); tier != "" {
		parsed, err := strconv.Atoi(tier)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "tier must be a number")
		}
		filter.Tier = parsed
	}

	ctx, service, err := ectoinject.GetContext[*snapshot.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}
	snap := service.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "order data not loaded yet")
	}

	today := time.Now().UTC()

	return c.JSON(http.StatusOK, PipelineResponse{
		Summary: analytics.PipelineSummary(snap.Tiers, snap.Interactions, today),
		Entries: analytics.PipelineEntries(snap.Tiers, snap.Interactions, today, filter),
	})
}
