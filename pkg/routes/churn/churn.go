package churn

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/redis"
	"github.com/Ramsey-B/fern/pkg/snapshot"
)

// Register registers churn routes
func Register(g *echo.Group) {
	g.GET("", Metrics)
}

// Metrics returns the fleet-wide churn bundle. Before the first snapshot
// load it falls back to the cached copy from a previous run.
func Metrics(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, service, err := ectoinject.GetContext[*snapshot.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if snap := service.Current(); snap != nil {
		return c.JSON(http.StatusOK, snap.Metrics)
	}

	ctx, cache, err := ectoinject.GetContext[*redis.Client](ctx)
	if err == nil && cache != nil {
		if cached, err := cache.Get(ctx, snapshot.MetricsCacheKey); err == nil {
			return c.JSONBlob(http.StatusOK, []byte(cached))
		}
	}

	return httperror.NewHTTPError(http.StatusServiceUnavailable, "churn metrics not loaded yet")
}
