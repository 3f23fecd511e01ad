// Package addresses cleans delivery addresses for grouping and geocoding.
package addresses

import (
	"regexp"
	"strings"
)

// DepotAddress is the kitchen's own address. Pickup orders resolve here.
const DepotAddress = "74 5th Ave, New York, NY, 10011"

// depotMarker identifies the depot in an already-cleaned address.
const depotMarker = "74 5th Ave"

var (
	parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	commaSuite    = regexp.MustCompile(`(?i),\s*(room|floor|ste|suite|#)\s*[^,]*`)
	spacedSuite   = regexp.MustCompile(`(?i)\s+(room|floor|ste|suite|#)\s+[^,\s]*`)
	crossStreet   = regexp.MustCompile(`(?i)\s*Cross Street:.*$`)
	newYorkNY     = regexp.MustCompile(`(?i)New York,?\s*NY`)
	nyc           = regexp.MustCompile(`(?i)NYC`)
	trailingZip   = regexp.MustCompile(`,\s*(\d{5})$`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	spacedComma   = regexp.MustCompile(`\s+,`)
	doubleComma   = regexp.MustCompile(`,\s*,`)
	edgeCommas    = regexp.MustCompile(`^\s*,\s*|\s*,\s*$`)
)

// Clean normalizes a raw delivery address for grouping. Pickup orders map to
// the depot. Parentheticals, suite/floor fragments, and cross-street notes
// are stripped, and addresses without a city default to New York, NY.
func Clean(address string) string {
	if address == "" {
		return ""
	}

	lowered := strings.ToLower(address)
	if strings.Contains(lowered, "pick up") || strings.TrimSpace(lowered) == "pickup" {
		return DepotAddress
	}

	cleaned := strings.TrimSpace(address)
	cleaned = parenthetical.ReplaceAllString(cleaned, " ")
	cleaned = commaSuite.ReplaceAllString(cleaned, "")
	cleaned = spacedSuite.ReplaceAllString(cleaned, "")
	cleaned = crossStreet.ReplaceAllString(cleaned, "")

	if !newYorkNY.MatchString(cleaned) && !nyc.MatchString(cleaned) {
		if trailingZip.MatchString(cleaned) {
			cleaned = trailingZip.ReplaceAllString(cleaned, ", New York, NY, $1")
		} else {
			cleaned += ", New York, NY"
		}
	}

	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = spacedComma.ReplaceAllString(cleaned, ",")
	cleaned = doubleComma.ReplaceAllString(cleaned, ",")
	cleaned = edgeCommas.ReplaceAllString(cleaned, "")

	return cleaned
}

// IsDepot reports whether a cleaned address is the pickup depot.
func IsDepot(cleaned string) bool {
	return strings.Contains(cleaned, depotMarker)
}
