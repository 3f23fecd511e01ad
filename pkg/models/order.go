package models

// Order is a single catering order as ingested from the order sheet.
// Orders are immutable once ingested; a data refresh rebuilds the full list.
type Order struct {
	ID               int    `json:"id"`
	Date             string `json:"date"` // ISO YYYY-MM-DD, UTC date-only; empty means unparseable
	OriginalDate     string `json:"original_date"`
	Time             string `json:"time"`
	Platform         string `json:"platform"`
	Company          string `json:"company"`
	Brand            string `json:"brand"`
	Address          string `json:"address"`
	Guests           int    `json:"guests"`
	GuestsRaw        string `json:"guests_raw"`
	ContactPerson    string `json:"contact_person"`
	PhoneNumber      string `json:"phone_number"`
	CustomerRequests string `json:"customer_requests"`
	Driver           string `json:"driver"`
	ProductionStatus string `json:"production_status"`
}

// Grid is a raw 2-D cell grid as returned by the spreadsheet values API.
// The first row is the header and is discarded during ingestion.
type Grid [][]string
