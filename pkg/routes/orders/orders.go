package orders

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

// Register registers order routes
func Register(g *echo.Group) {
	g.GET("", ListOrders)
	g.GET("/today", TodayOrders)
}

// OrderListResponse is the response body for the order list
type OrderListResponse struct {
	Summary models.HistorySummary `json:"summary"`
	Orders  []models.Order        `json:"orders"`
}

// ListOrders returns filtered order history with a summary
func ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	filter := analytics.OrderFilter{
		Search:    c.QueryParam("search"),
		Platform:  c.QueryParam("platform"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
		Limit:     analytics.HistoryLimit,
	}
	if tier := c.QueryParam("tier"); tier != "" {
		parsed, err := strconv.Atoi(tier)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "tier must be a number")
		}
		filter.Tier = parsed
	}
	if limit := c.QueryParam("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 1 {
			return httperror.NewHTTPError(http.StatusBadRequest, "limit must be a positive number")
		}
		filter.Limit = parsed
	}

	ctx, service, err := ectoinject.GetContext[*snapshot.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}
	snap := service.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "order data not loaded yet")
	}

	filtered := analytics.FilterOrders(snap.Orders, snap.Tiers, filter)

	return c.JSON(http.StatusOK, OrderListResponse{
		Summary: analytics.HistorySummary(filtered, snap.Tiers),
		Orders:  filtered,
	})
}

// TodayOrders returns today's delivery schedule
func TodayOrders(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, service, err := ectoinject.GetContext[*snapshot.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}
	snap := service.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "order data not loaded yet")
	}

	orders := snap.Orders
	if search, platform := c.QueryParam("search"), c.QueryParam("platform"); search != "" || platform != "" {
		orders = analytics.FilterOrders(orders, snap.Tiers, analytics.OrderFilter{
			Search:   search,
			Platform: platform,
		})
	}

	return c.JSON(http.StatusOK, analytics.TodaySummary(orders, snap.Tiers, time.Now().UTC()))
}
