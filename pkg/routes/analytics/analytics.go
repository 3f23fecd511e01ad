package analytics

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/analytics"
	"github.com/Ramsey-B/fern/pkg/snapshot"
)

// Register registers analytics routes
func Register(g *echo.Group) {
	g.GET("", Summary)
	g.GET("/map", DeliveryMap)
}

// Summary returns order analytics for an optional date range
func Summary(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, service, err := ectoinject.GetContext[*snapshot.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}
	snap := service.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "order data not loaded yet")
	}

	summary := analytics.Summarize(snap.Orders, snap.Tiers, c.QueryParam("start_date"), c.QueryParam("end_date"))

	return c.JSON(http.StatusOK, summary)
}

// DeliveryMap returns orders grouped by cleaned delivery address
func DeliveryMap(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, service, err := ectoinject.GetContext[*snapshot.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}
	snap := service.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "order data not loaded yet")
	}

	summary := analytics.MapSummary(snap.Orders, snap.Tiers, c.QueryParam("start_date"), c.QueryParam("end_date"))

	return c.JSON(http.StatusOK, summary)
}
