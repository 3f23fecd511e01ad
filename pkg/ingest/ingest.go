// Package ingest converts raw sheet grids into structured order lists.
package ingest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
)

// ColumnLayout maps the semantic order fields to column indices in the sheet
// grid. The positions are contractual with the source sheet.
type ColumnLayout struct {
	Date             int
	Platform         int
	Time             int
	Canceled         int
	Brand            int
	Company          int
	Address          int
	Guests           int
	ContactPerson    int
	PhoneNumber      int
	ProductionStatus int
	CustomerRequests int
	Driver           int
}

// DefaultLayout matches the production order sheet.
var DefaultLayout = ColumnLayout{
	Date:             2,
	Platform:         3,
	Time:             4,
	Canceled:         6,
	Brand:            7,
	Company:          8,
	Address:          9,
	Guests:           10,
	ContactPerson:    11,
	PhoneNumber:      13,
	ProductionStatus: 14,
	CustomerRequests: 18,
	Driver:           22,
}

// monthToken pre-filters raw date cells before the real parse. Rows whose
// date cell mentions no year or month name are junk (notes, blanks, headers).
var monthToken = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\b`)

// ProcessGrid ingests a raw sheet grid using the default column layout.
func ProcessGrid(grid models.Grid) []models.Order {
	return ProcessGridWithLayout(grid, DefaultLayout)
}

// ProcessGridWithLayout ingests a raw sheet grid. The first row is the
// header and is discarded. Canceled rows and rows without a parseable date
// are dropped. IDs are assigned in input order before the final descending
// date sort, so they are stable against re-sorting.
func ProcessGridWithLayout(grid models.Grid, layout ColumnLayout) []models.Order {
	if len(grid) < 2 {
		return []models.Order{}
	}

	orders := make([]models.Order, 0, len(grid)-1)
	id := 0
	for _, row := range grid[1:] {
		if !keepRow(row, layout) {
			continue
		}
		id++

		order := models.Order{
			ID:               id,
			Date:             normalizers.ParseDate(cell(row, layout.Date)),
			OriginalDate:     cell(row, layout.Date),
			Time:             normalizers.StandardizeTime(cell(row, layout.Time)),
			Platform:         normalizers.StandardizePlatform(cell(row, layout.Platform)),
			Company:          companyName(cell(row, layout.Company)),
			Brand:            strings.TrimSpace(cell(row, layout.Brand)),
			Address:          strings.TrimSpace(cell(row, layout.Address)),
			Guests:           normalizers.ParseGuestCount(cell(row, layout.Guests)),
			GuestsRaw:        strings.TrimSpace(cell(row, layout.Guests)),
			ContactPerson:    strings.TrimSpace(cell(row, layout.ContactPerson)),
			PhoneNumber:      strings.TrimSpace(cell(row, layout.PhoneNumber)),
			CustomerRequests: strings.TrimSpace(cell(row, layout.CustomerRequests)),
			Driver:           strings.TrimSpace(cell(row, layout.Driver)),
			ProductionStatus: strings.TrimSpace(cell(row, layout.ProductionStatus)),
		}

		if order.Date == "" {
			continue
		}
		orders = append(orders, order)
	}

	// ISO dates compare correctly as strings.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date > orders[j].Date
	})

	return orders
}

// keepRow applies the cancellation and raw-date pre-filters.
func keepRow(row []string, layout ColumnLayout) bool {
	if strings.EqualFold(strings.TrimSpace(cell(row, layout.Canceled)), "y") {
		return false
	}

	dateStr := cell(row, layout.Date)
	if dateStr == "" {
		return false
	}
	return strings.Contains(dateStr, "2024") ||
		strings.Contains(dateStr, "2025") ||
		monthToken.MatchString(dateStr)
}

func companyName(raw string) string {
	if raw == "" {
		return "Unknown"
	}
	return strings.TrimSpace(raw)
}

// cell reads a column from a possibly ragged row.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
