package ingest

import (
	"testing"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
)

type rowSpec struct {
	date     string
	platform string
	canceled string
	company  string
	guests   string
}

func buildRow(spec rowSpec) []string {
	row := make([]string, 23)
	row[DefaultLayout.Date] = spec.date
	row[DefaultLayout.Platform] = spec.platform
	row[DefaultLayout.Canceled] = spec.canceled
	row[DefaultLayout.Company] = spec.company
	row[DefaultLayout.Guests] = spec.guests
	return row
}

func buildGrid(specs ...rowSpec) models.Grid {
	grid := models.Grid{make([]string, 23)} // header row
	for _, spec := range specs {
		grid = append(grid, buildRow(spec))
	}
	return grid
}

func TestProcessGrid(t *testing.T) {
	t.Run("should return empty for a header-only grid", func(t *testing.T) {
		assert.Empty(t, ProcessGrid(models.Grid{make([]string, 23)}))
		assert.Empty(t, ProcessGrid(nil))
	})

	t.Run("should drop canceled rows regardless of other fields", func(t *testing.T) {
		orders := ProcessGrid(buildGrid(
			rowSpec{date: "2025-01-10", company: "Acme", canceled: "Y"},
			rowSpec{date: "2025-01-11", company: "Globex", canceled: " y "},
			rowSpec{date: "2025-01-12", company: "Initech"},
		))

		assert.Len(t, orders, 1)
		assert.Equal(t, "Initech", orders[0].Company)
	})

	t.Run("should drop rows whose date cell has no year or month token", func(t *testing.T) {
		orders := ProcessGrid(buildGrid(
			rowSpec{date: "see notes", company: "Acme"},
			rowSpec{date: "2025-01-12", company: "Initech"},
			rowSpec{date: "Jan 5, 2025", company: "Globex"},
		))

		assert.Len(t, orders, 2)
	})

	t.Run("should drop rows whose date survives the pre-filter but fails to parse", func(t *testing.T) {
		orders := ProcessGrid(buildGrid(
			rowSpec{date: "sometime in January maybe", company: "Acme"},
			rowSpec{date: "2025-01-12", company: "Initech"},
		))

		assert.Len(t, orders, 1)
		assert.Equal(t, "Initech", orders[0].Company)
	})

	t.Run("should sort descending by date", func(t *testing.T) {
		orders := ProcessGrid(buildGrid(
			rowSpec{date: "2025-01-10", company: "Acme"},
			rowSpec{date: "2025-03-01", company: "Globex"},
			rowSpec{date: "2025-02-15", company: "Initech"},
		))

		assert.Equal(t, []string{"2025-03-01", "2025-02-15", "2025-01-10"}, []string{orders[0].Date, orders[1].Date, orders[2].Date})
	})

	t.Run("should assign contiguous ids in input order before sorting", func(t *testing.T) {
		orders := ProcessGrid(buildGrid(
			rowSpec{date: "2025-01-10", company: "Acme"},
			rowSpec{date: "2025-03-01", company: "Globex"},
			rowSpec{date: "2025-02-15", company: "Initech"},
		))

		byCompany := map[string]int{}
		for _, order := range orders {
			byCompany[order.Company] = order.ID
		}
		assert.Equal(t, map[string]int{"Acme": 1, "Globex": 2, "Initech": 3}, byCompany)
	})

	t.Run("should normalize fields and keep raw display values", func(t *testing.T) {
		orders := ProcessGrid(buildGrid(
			rowSpec{date: "3/14/2025", platform: "door dash", company: "  Acme Corp ", guests: "20-50"},
		))

		assert.Len(t, orders, 1)
		order := orders[0]
		assert.Equal(t, "2025-03-14", order.Date)
		assert.Equal(t, "3/14/2025", order.OriginalDate)
		assert.Equal(t, "DoorDash", order.Platform)
		assert.Equal(t, "Acme Corp", order.Company)
		assert.Equal(t, 35, order.Guests)
		assert.Equal(t, "20-50", order.GuestsRaw)
	})

	t.Run("should default a missing company to Unknown", func(t *testing.T) {
		orders := ProcessGrid(buildGrid(rowSpec{date: "2025-01-12"}))

		assert.Len(t, orders, 1)
		assert.Equal(t, "Unknown", orders[0].Company)
	})

	t.Run("should tolerate ragged rows", func(t *testing.T) {
		grid := models.Grid{make([]string, 23), {"", "", "2025-01-12"}}
		orders := ProcessGrid(grid)

		assert.Len(t, orders, 1)
		assert.Equal(t, "Unknown", orders[0].Company)
	})
}
