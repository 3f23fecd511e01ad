// Package normalizers provides field normalization functions for raw order sheet cells
package normalizers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const isoDate = "2006-01-02"

// dateLayouts covers the formats seen in the order sheet. Order matters:
// more specific layouts first so date-only strings don't lose information.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	isoDate,
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, January 2, 2006",
}

// ParseDate converts a raw date cell into an ISO YYYY-MM-DD string.
// Dates are treated as UTC date-only values. Anything unparseable
// returns the empty string; callers drop such rows.
func ParseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC().Format(isoDate)
		}
	}

	return ""
}

var leadingNumber = regexp.MustCompile(`^(\d+(?:\.\d+)?)`)

// ParseGuestCount extracts a guest headcount from free-text cells like
// "20-50", "100+", "12 people". Values over 1000 are treated as junk
// (phone-number fragments and the like) and return 0.
func ParseGuestCount(raw string) int {
	str := strings.TrimSpace(raw)
	if str == "" {
		return 0
	}

	// Ranges like "20-50" or "10 - 20" resolve to the midpoint.
	if strings.Contains(str, "-") {
		parts := strings.Split(str, "-")
		if len(parts) == 2 {
			start, startErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			end, endErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if startErr == nil && endErr == nil {
				return int(math.Round((start + end) / 2))
			}
		}
	}

	// "100+" style counts.
	if strings.Contains(str, "+") {
		if number, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(str, "+", "", 1)), 64); err == nil && number <= 1000 {
			return int(math.Round(number))
		}
	}

	if match := leadingNumber.FindString(str); match != "" {
		number, err := strconv.ParseFloat(match, 64)
		if err != nil || number > 1000 {
			return 0
		}
		return int(math.Round(number))
	}

	return 0
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	amToken       = regexp.MustCompile(`(?i)am`)
	pmToken       = regexp.MustCompile(`(?i)pm`)
)

// StandardizeTime cleans up a free-text time-of-day string. Cosmetic only;
// it never changes the numeric meaning of the value.
func StandardizeTime(raw string) string {
	if raw == "" {
		return ""
	}
	s := whitespaceRun.ReplaceAllString(raw, " ")
	s = strings.ReplaceAll(s, "- ", " - ")
	s = amToken.ReplaceAllString(s, "AM")
	s = pmToken.ReplaceAllString(s, "PM")
	return strings.TrimSpace(s)
}

// platformAlias maps substrings of a cleaned platform cell to its canonical
// name. The table is evaluated top to bottom and the first match wins, so
// order matters where aliases overlap. Several entries cover recurring
// misspellings from the sheet.
type platformAlias struct {
	substrings []string
	canonical  string
}

var platformAliases = []platformAlias{
	{[]string{"catercow", "caterocow", "catecow", "cartercow"}, "CaterCow"},
	{[]string{"clubfeast"}, "ClubFeast"},
	{[]string{"doordash", "door dash"}, "DoorDash"},
	{[]string{"ezcater", "ez cater"}, "ezCater"},
	{[]string{"fooda"}, "Fooda"},
	{[]string{"fokable", "forkale"}, "Forkable"},
	{[]string{"sharebite", "share bite"}, "ShareBite"},
	{[]string{"zercocater"}, "Zerocater"},
	{[]string{"grubhub"}, "Grubhub"},
	{[]string{"relish"}, "Relish"},
	{[]string{"forkable ewb"}, "Forkable EWB"},
	{[]string{"foodie for all"}, "Foodie for All"},
	{[]string{"flex catering"}, "Flex Catering"},
}

// StandardizePlatform canonicalizes a raw platform cell. Empty cells mean a
// direct booking. Unknown platforms fall back to a title-cased copy of the
// cleaned input so new platforms still render sensibly.
func StandardizePlatform(raw string) string {
	if raw == "" {
		return "Direct"
	}

	cleaned := cleanPlatform(raw)
	lowered := strings.ToLower(cleaned)

	for _, alias := range platformAliases {
		for _, sub := range alias.substrings {
			if strings.Contains(lowered, sub) {
				return alias.canonical
			}
		}
	}

	if lowered == "na" {
		return "N/A"
	}

	return titleCaseWords(cleaned)
}

// cleanPlatform strips stray backspace characters the sheet sometimes
// contains and collapses whitespace.
func cleanPlatform(s string) string {
	s = strings.ReplaceAll(s, "\b", "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func titleCaseWords(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		words[i] = string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
