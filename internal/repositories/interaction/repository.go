package interaction

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var columns = []string{"id", "company", "type", "date", "notes", "next_followup_date", "sales_status", "created_at"}

// Repository handles interaction persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new interaction repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Append records a new interaction for a company
func (r *Repository) Append(ctx context.Context, company string, req models.AppendInteractionRequest) (*models.Interaction, error) {
	ctx, span := tracing.StartSpan(ctx, "interaction.Repository.Append")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method":  "Append",
		"company": company,
		"type":    req.Type,
	})

	record := &models.Interaction{
		ID:               uuid.New().String(),
		Company:          company,
		Type:             req.Type,
		Date:             req.Date,
		Notes:            req.Notes,
		NextFollowupDate: req.NextFollowupDate,
		SalesStatus:      req.SalesStatus,
		CreatedAt:        time.Now().UTC(),
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("interactions")
	sb.Cols(columns...)
	sb.Values(record.ID, record.Company, record.Type, record.Date, record.Notes, record.NextFollowupDate, record.SalesStatus, record.CreatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to append interaction")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to append interaction")
	}

	log.WithFields(map[string]any{"id": record.ID}).Info("Appended interaction")
	return record, nil
}

// GetByCompany retrieves a company's interactions, newest first
func (r *Repository) GetByCompany(ctx context.Context, company string) ([]models.Interaction, error) {
	ctx, span := tracing.StartSpan(ctx, "interaction.Repository.GetByCompany")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("interactions")
	sb.Where(sb.Equal("company", company))
	sb.OrderBy("date DESC", "created_at DESC")

	query, args := sb.Build()
	var records []models.Interaction
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get interactions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to get interactions for %s", company))
	}

	return records, nil
}

// ListAll retrieves every interaction grouped by company
func (r *Repository) ListAll(ctx context.Context) (models.InteractionMap, error) {
	ctx, span := tracing.StartSpan(ctx, "interaction.Repository.ListAll")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("interactions")
	sb.OrderBy("date DESC", "created_at DESC")

	query, args := sb.Build()
	var records []models.Interaction
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list interactions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list interactions")
	}

	grouped := models.InteractionMap{}
	for _, record := range records {
		grouped[record.Company] = append(grouped[record.Company], record)
	}

	return grouped, nil
}
