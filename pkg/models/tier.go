package models

// Third-party platform canonical names. Orders placed through any of these
// count toward customer stats; Direct orders do not.
const (
	PlatformDirect       = "Direct"
	PlatformEzCater      = "ezCater"
	PlatformCaterCow     = "CaterCow"
	PlatformShareBite    = "ShareBite"
	PlatformDoorDash     = "DoorDash"
	PlatformGrubhub      = "Grubhub"
	PlatformFlexCatering = "Flex Catering"
)

// CustomerStats aggregates a company's third-party order history.
type CustomerStats struct {
	Orders      []Order  `json:"orders"`
	TotalOrders int      `json:"total_orders"`
	Brands      []string `json:"brands"`
	Platforms   []string `json:"platforms"`
	TotalGuests int      `json:"total_guests"`
	AvgGuests   float64  `json:"avg_guests"`
}

// CustomerTier is the growth-potential ranking for a single company.
// Tier 1 is highest potential.
type CustomerTier struct {
	Tier  int           `json:"tier"`  // 1..3
	Score int           `json:"score"` // 0..100
	Stats CustomerStats `json:"stats"`
}

// TierMap holds the tier record for every scored company, keyed by company name.
type TierMap map[string]CustomerTier
