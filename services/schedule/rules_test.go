package schedule

import (
	"testing"
	"time"

	"detailing/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(config.Config{
		ServiceTimezone:  "America/Halifax",
		BusinessOpen:     "9am",
		BusinessClose:    "17:30",
		SlotIncrementMin: 15,
		BufferMin:        10,
		ClosedWeekdays:   "saturday",
		DefaultDuration:  45,
	})
	require.NoError(t, err)
	assert.Equal(t, "America/Halifax", rules.Location.String())
	assert.Equal(t, 9*60, rules.OpenMinute)
	assert.Equal(t, 17*60+30, rules.CloseMinute)
	assert.Equal(t, 15*time.Minute, rules.Increment)
	assert.Equal(t, 10*time.Minute, rules.Buffer)
	assert.Equal(t, map[time.Weekday]bool{time.Saturday: true}, rules.ClosedWeekdays)
	assert.Equal(t, 45, rules.DefaultDuration)
}

func TestRulesFromConfigRejectsBadValues(t *testing.T) {
	_, err := RulesFromConfig(config.Config{ServiceTimezone: "Mars/Olympus"})
	assert.Error(t, err)

	_, err = RulesFromConfig(config.Config{ServiceTimezone: "UTC", BusinessOpen: "18:00", BusinessClose: "08:00"})
	assert.Error(t, err)

	_, err = RulesFromConfig(config.Config{ServiceTimezone: "UTC", ClosedWeekdays: "someday"})
	assert.Error(t, err)
}

func TestRulesIsClosedUsesServiceZone(t *testing.T) {
	loc := halifax(t)
	rules := DefaultRules(loc)
	// 01:00 UTC Tuesday is still Monday evening in Halifax.
	assert.True(t, rules.IsClosed(time.Date(2025, 6, 17, 1, 0, 0, 0, time.UTC)))
	// 01:00 UTC Wednesday is Tuesday evening in Halifax.
	assert.False(t, rules.IsClosed(time.Date(2025, 6, 18, 1, 0, 0, 0, time.UTC)))
}
