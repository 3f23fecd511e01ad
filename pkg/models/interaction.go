package models

import "time"

// Sales statuses tracked on interactions. The sheet is free-text so these are
// conventions, not an enum; "prospect" is the default for untouched companies.
const (
	SalesStatusProspect  = "prospect"
	SalesStatusConverted = "converted"
)

// Follow-up buckets derived from an interaction's next follow-up date.
const (
	FollowupNone     = ""
	FollowupOverdue  = "overdue"
	FollowupToday    = "today"
	FollowupThisWeek = "thisweek"
	FollowupFuture   = "future"
)

// Interaction is a single sales touchpoint (call, email, meeting, note)
// recorded against a company.
type Interaction struct {
	ID               string    `json:"id" db:"id"`
	Company          string    `json:"company" db:"company"`
	Type             string    `json:"type" db:"type"`
	Date             string    `json:"date" db:"date"` // ISO YYYY-MM-DD
	Notes            string    `json:"notes" db:"notes"`
	NextFollowupDate *string   `json:"next_followup_date,omitempty" db:"next_followup_date"`
	SalesStatus      string    `json:"sales_status" db:"sales_status"`
	CreatedAt        time.Time `json:"timestamp" db:"created_at"`
}

// AppendInteractionRequest is the request body for recording an interaction.
type AppendInteractionRequest struct {
	Type             string  `json:"type" validate:"required"`
	Date             string  `json:"date" validate:"required"`
	Notes            string  `json:"notes"`
	NextFollowupDate *string `json:"next_followup_date,omitempty"`
	SalesStatus      string  `json:"sales_status"`
}

// InteractionMap holds each company's interaction history, most recent state
// derived by the callers. Lists are ordered as loaded (insertion order).
type InteractionMap map[string][]Interaction
