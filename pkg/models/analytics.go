package models

// TodaySummary is the stat-card bundle for today's orders.
type TodaySummary struct {
	OrderCount   int     `json:"order_count"`
	CompanyCount int     `json:"company_count"`
	TotalGuests  int     `json:"total_guests"`
	Tier1Count   int     `json:"tier_1_count"`
	Orders       []Order `json:"orders"`
}

// HistorySummary is the stat-card bundle for the full order history.
type HistorySummary struct {
	TotalOrders    int `json:"total_orders"`
	CompanyCount   int `json:"company_count"`
	AvgGuests      int `json:"avg_guests"`
	Tier1Customers int `json:"tier_1_customers"`
}

// CustomerOrderCount is one row of the top-customers leaderboard.
type CustomerOrderCount struct {
	Company    string  `json:"company"`
	OrderCount int     `json:"order_count"`
	Tier       int     `json:"tier"`
	Orders     []Order `json:"orders"`
}

// TimelinePoint is one day on the order-volume timeline.
type TimelinePoint struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}

// AnalyticsSummary aggregates orders over a date range for the analytics tab.
// Companies named "unknown"/"na" and the "na" platform are excluded.
type AnalyticsSummary struct {
	TotalOrders       int                  `json:"total_orders"`
	AvgGuests         int                  `json:"avg_guests"`
	RepeatCustomers   int                  `json:"repeat_customers"`
	TopPlatform       string               `json:"top_platform"`
	PlatformBreakdown map[string]int       `json:"platform_breakdown"`
	TopCustomers      []CustomerOrderCount `json:"top_customers"`
	Timeline          []TimelinePoint      `json:"timeline"`
}

// PipelineSummary is the stat-card bundle for the sales pipeline tab.
type PipelineSummary struct {
	Tier1Prospects    int    `json:"tier_1_prospects"`
	OverdueFollowups  int    `json:"overdue_followups"`
	ThisWeekFollowups int    `json:"this_week_followups"`
	ConversionRate    string `json:"conversion_rate"` // e.g. "4.17%"
}

// PipelineEntry is one company row in the pipeline table.
type PipelineEntry struct {
	Company       string  `json:"company"`
	Tier          int     `json:"tier"`
	TotalOrders   int     `json:"total_orders"`
	BrandCount    int     `json:"brand_count"`
	AvgGuests     int     `json:"avg_guests"`
	LastOrderDate string  `json:"last_order_date"`
	LastContact   *string `json:"last_contact,omitempty"`
	DaysSince     *int    `json:"days_since_contact,omitempty"`
	NextFollowup  *string `json:"next_followup,omitempty"`
	SalesStatus   string  `json:"sales_status"`
}

// AddressGroup is one delivery location on the map, grouping the orders that
// share a cleaned address.
type AddressGroup struct {
	Address  string  `json:"address"`
	IsPickup bool    `json:"is_pickup"`
	HasTier1 bool    `json:"has_tier_1"`
	Orders   []Order `json:"orders"`
}

// MapSummary is the stat-card bundle plus grouped locations for the map tab.
type MapSummary struct {
	TotalOrders     int            `json:"total_orders"`
	UniqueAddresses int            `json:"unique_addresses"`
	PickupCount     int            `json:"pickup_count"`
	Groups          []AddressGroup `json:"groups"`
}
