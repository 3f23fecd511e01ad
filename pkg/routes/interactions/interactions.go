package interactions

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/interaction"
	derive "github.com/Ramsey-B/fern/pkg/interactions"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/sheets"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var validate = validator.New()

// Register registers interaction routes
func Register(g *echo.Group) {
	g.GET("/:company", ListInteractions)
	g.POST("/:company", AppendInteraction)
}

// InteractionListResponse is the response body for a company's interactions
type InteractionListResponse struct {
	Company        string               `json:"company"`
	SalesStatus    string               `json:"sales_status"`
	FollowupStatus string               `json:"followup_status"`
	Interactions   []models.Interaction `json:"interactions"`
}

// ListInteractions returns a company's interaction history with derived status
func ListInteractions(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "interactions_handler.ListInteractions")
	defer span.End()

	company := c.Param("company")
	if company == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "company is required")
	}

	ctx, repo, err := ectoinject.GetContext[*interaction.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	records, err := repo.GetByCompany(ctx, company)
	if err != nil {
		return err
	}

	today := time.Now().UTC()

	return c.JSON(http.StatusOK, InteractionListResponse{
		Company:        company,
		SalesStatus:    derive.CurrentSalesStatus(records),
		FollowupStatus: derive.FollowupStatus(records, today),
		Interactions:   records,
	})
}

// AppendInteraction records a new interaction for a company
func AppendInteraction(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "interactions_handler.AppendInteraction")
	defer span.End()

	company := c.Param("company")
	if company == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "company is required")
	}

	var req models.AppendInteractionRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*interaction.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Append(ctx, company, req)
	if err != nil {
		return err
	}

	// mirror to the shared sheet, best effort
	if ctx, mirror, err := ectoinject.GetContext[*sheets.InteractionMirror](ctx); err == nil && mirror != nil {
		_ = mirror.Mirror(ctx, created)
	}

	return c.JSON(http.StatusCreated, created)
}
