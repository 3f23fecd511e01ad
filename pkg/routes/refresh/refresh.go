package refresh

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/snapshot"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Register registers refresh routes
func Register(g *echo.Group) {
	g.POST("", Refresh)
}

// RefreshResponse is the response body for a manual refresh
type RefreshResponse struct {
	Orders    int    `json:"orders"`
	Companies int    `json:"companies"`
	LoadedAt  string `json:"loaded_at"`
}

// Refresh rebuilds the snapshot on demand
func Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "refresh_handler.Refresh")
	defer span.End()

	ctx, refresher, err := ectoinject.GetContext[*snapshot.Refresher](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	snap, err := refresher.Refresh(ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadGateway, "refresh failed")
	}

	return c.JSON(http.StatusOK, RefreshResponse{
		Orders:    len(snap.Orders),
		Companies: len(snap.Tiers),
		LoadedAt:  snap.LoadedAt.Format(time.RFC3339),
	})
}
