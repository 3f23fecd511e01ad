package sheets

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// InteractionMirror appends stored interactions to the shared spreadsheet
// so the sales team sees them next to the order book.
type InteractionMirror struct {
	client      *Client
	appendRange string
	logger      ectologger.Logger
}

// NewInteractionMirror creates a new interaction mirror
func NewInteractionMirror(client *Client, appendRange string, logger ectologger.Logger) *InteractionMirror {
	return &InteractionMirror{
		client:      client,
		appendRange: appendRange,
		logger:      logger,
	}
}

// Mirror appends one interaction as a sheet row.
func (m *InteractionMirror) Mirror(ctx context.Context, record *models.Interaction) error {
	ctx, span := tracing.StartSpan(ctx, "sheets.InteractionMirror.Mirror")
	defer span.End()

	followup := ""
	if record.NextFollowupDate != nil {
		followup = *record.NextFollowupDate
	}

	row := []string{
		record.Company,
		record.Type,
		record.Date,
		record.Notes,
		followup,
		record.SalesStatus,
	}

	if err := m.client.AppendRow(ctx, m.appendRange, row); err != nil {
		m.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"company": record.Company,
		}).Warn("Interaction not mirrored to sheet")
		return err
	}

	return nil
}
