package models

// ChurnStatus is the recency/frequency health label for a customer relationship.
type ChurnStatus string

const (
	ChurnStatusNone     ChurnStatus = "" // insufficient data (<2 orders)
	ChurnStatusActive   ChurnStatus = "active"
	ChurnStatusWatching ChurnStatus = "watching"
	ChurnStatusAtRisk   ChurnStatus = "at-risk"
	ChurnStatusCritical ChurnStatus = "critical"
	ChurnStatusLost     ChurnStatus = "lost"
)

// ChurnRecord describes a single company that is in a churning segment.
type ChurnRecord struct {
	Company       string      `json:"company"`
	Status        ChurnStatus `json:"status"`
	Tier          int         `json:"tier"`
	DaysSince     int         `json:"days_since"`
	LastOrderDate string      `json:"last_order_date"`
	TotalOrders   int         `json:"total_orders"`
	AvgFrequency  *float64    `json:"avg_frequency,omitempty"` // mean days between orders, nil if unknown
}

// PlatformSwitch records a company moving from Flex Catering to a third-party
// platform within the switch window.
type PlatformSwitch struct {
	Company         string `json:"company"`
	FlexOrder       Order  `json:"flex_order"`
	SwitchedToOrder Order  `json:"switched_to_order"`
	DaysBetween     int    `json:"days_between"`
	Tier            int    `json:"tier"`
	FlexOrderCount  int    `json:"flex_order_count"`
	OtherOrderCount int    `json:"other_order_count"`
}

// ChurnMetrics is the fleet-wide churn bundle consumed by the dashboard.
// AtRiskCount includes critical companies; CriticalCount tracks them separately.
type ChurnMetrics struct {
	AtRiskCount            int              `json:"at_risk_count"`
	CriticalCount          int              `json:"critical_count"`
	WatchingCount          int              `json:"watching_count"`
	Silent30Count          int              `json:"silent_30_count"`
	ChurnRate              string           `json:"churn_rate"` // e.g. "12.3%"
	PlatformSwitchersCount int              `json:"platform_switchers_count"`
	ChurningCompanies      []ChurnRecord    `json:"churning_companies"`
	PlatformSwitchers      []PlatformSwitch `json:"platform_switchers"`
}
