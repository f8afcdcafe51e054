package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // still March 1st in UTC
	assert.Equal(t, "2026-03-01", DateKey(ts))
}

func TestSeed_StableWithinADay(t *testing.T) {
	morning := time.Date(2026, 10, 17, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 10, 17, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, Seed(morning, "salt"), Seed(night, "salt"))
}

func TestSeed_VariesByDateAndSalt(t *testing.T) {
	day := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	assert.NotEqual(t, Seed(day, "salt"), Seed(day.AddDate(0, 0, 1), "salt"))
	assert.NotEqual(t, Seed(day, "salt"), Seed(day, "pepper"))
}
