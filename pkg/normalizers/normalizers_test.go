package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("should parse common sheet formats to ISO dates", func(t *testing.T) {
		assert.Equal(t, "2025-03-14", ParseDate("2025-03-14"))
		assert.Equal(t, "2025-03-14", ParseDate("3/14/2025"))
		assert.Equal(t, "2025-03-14", ParseDate("03/14/2025"))
		assert.Equal(t, "2025-03-14", ParseDate("March 14, 2025"))
		assert.Equal(t, "2025-03-14", ParseDate("Mar 14, 2025"))
		assert.Equal(t, "2025-03-14", ParseDate("  2025-03-14  "))
	})

	t.Run("should keep the UTC calendar date when a time is present", func(t *testing.T) {
		assert.Equal(t, "2025-03-14", ParseDate("2025-03-14T18:30:00Z"))
		assert.Equal(t, "2025-03-14", ParseDate("3/14/2025 18:30"))
	})

	t.Run("should return the empty sentinel for unparseable input", func(t *testing.T) {
		assert.Equal(t, "", ParseDate(""))
		assert.Equal(t, "", ParseDate("TBD"))
		assert.Equal(t, "", ParseDate("sometime next week"))
	})
}

func TestParseGuestCount(t *testing.T) {
	t.Run("should resolve ranges to the rounded midpoint", func(t *testing.T) {
		assert.Equal(t, 35, ParseGuestCount("20-50"))
		assert.Equal(t, 15, ParseGuestCount("10 - 20"))
	})

	t.Run("should accept plus counts up to 1000", func(t *testing.T) {
		assert.Equal(t, 100, ParseGuestCount("100+"))
		assert.Equal(t, 0, ParseGuestCount("2000+"))
	})

	t.Run("should take the leading numeric prefix", func(t *testing.T) {
		assert.Equal(t, 12, ParseGuestCount("12"))
		assert.Equal(t, 25, ParseGuestCount("25 people"))
		assert.Equal(t, 13, ParseGuestCount("12.5"))
	})

	t.Run("should treat oversized numbers as junk", func(t *testing.T) {
		assert.Equal(t, 0, ParseGuestCount("1500"))
	})

	t.Run("should return zero when no count is present", func(t *testing.T) {
		assert.Equal(t, 0, ParseGuestCount(""))
		assert.Equal(t, 0, ParseGuestCount("abc"))
		assert.Equal(t, 0, ParseGuestCount("   "))
	})
}

func TestStandardizeTime(t *testing.T) {
	t.Run("should collapse whitespace and trim", func(t *testing.T) {
		assert.Equal(t, "11:30 AM", StandardizeTime("  11:30   am "))
	})

	t.Run("should space out range dashes", func(t *testing.T) {
		assert.Equal(t, "11:30 - 12:00", StandardizeTime("11:30- 12:00"))
	})

	t.Run("should uppercase AM and PM tokens", func(t *testing.T) {
		assert.Equal(t, "12:00 PM", StandardizeTime("12:00 pm"))
		assert.Equal(t, "9AM", StandardizeTime("9am"))
	})

	t.Run("should return empty for empty input", func(t *testing.T) {
		assert.Equal(t, "", StandardizeTime(""))
	})
}

func TestStandardizePlatform(t *testing.T) {
	t.Run("should default empty input to Direct", func(t *testing.T) {
		assert.Equal(t, "Direct", StandardizePlatform(""))
	})

	t.Run("should match aliases case-insensitively with noise", func(t *testing.T) {
		assert.Equal(t, "ezCater", StandardizePlatform("  EZCATER "))
		assert.Equal(t, "ezCater", StandardizePlatform("ez cater order"))
		assert.Equal(t, "DoorDash", StandardizePlatform("Door Dash"))
		assert.Equal(t, "ShareBite", StandardizePlatform("share bite"))
		assert.Equal(t, "Grubhub", StandardizePlatform("GRUBHUB"))
		assert.Equal(t, "Flex Catering", StandardizePlatform("flex  catering"))
	})

	t.Run("should canonicalize known misspellings", func(t *testing.T) {
		assert.Equal(t, "CaterCow", StandardizePlatform("caterocow"))
		assert.Equal(t, "CaterCow", StandardizePlatform("cartercow"))
		assert.Equal(t, "Forkable", StandardizePlatform("fokable"))
		assert.Equal(t, "Zerocater", StandardizePlatform("zercocater"))
	})

	t.Run("should map literal na to N/A", func(t *testing.T) {
		assert.Equal(t, "N/A", StandardizePlatform("NA"))
		assert.Equal(t, "N/A", StandardizePlatform("na"))
	})

	t.Run("should title-case unknown platforms", func(t *testing.T) {
		assert.Equal(t, "Some New Co", StandardizePlatform("some new co"))
		assert.Equal(t, "Some New Co", StandardizePlatform("SOME NEW CO"))
	})
}
