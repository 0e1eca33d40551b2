package limit

import (
	"testing"
	"time"

	"cardbank/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayLimit(cap, remaining string, start time.Time, cfg Config) *models.CardLimit {
	return &models.CardLimit{
		CardID:      1,
		Kind:        models.LimitKindDay,
		Cap:         models.MustMoney(cap),
		Remaining:   models.MustMoney(remaining),
		WindowStart: start,
		WindowEnd:   cfg.WindowEnd(models.LimitKindDay, start),
	}
}

func TestTrackerReserveWithinAllowance(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := dayLimit("500", "500", start, cfg)

	err := NewTracker(l, cfg).Reserve(models.MustMoney("200"), start.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, l.Remaining.Equal(models.MustMoney("300")))
	assert.Equal(t, start, l.WindowStart)
}

func TestTrackerReserveExceededLeavesStateUnchanged(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := dayLimit("500", "200", start, cfg)

	err := NewTracker(l, cfg).Reserve(models.MustMoney("300.01"), start.Add(time.Hour))

	var exceeded *ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, models.LimitKindDay, exceeded.Kind)
	assert.True(t, l.Remaining.Equal(models.MustMoney("200")))
}

func TestTrackerReserveToExactlyZeroSucceeds(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := dayLimit("500", "200", start, cfg)

	require.NoError(t, NewTracker(l, cfg).Reserve(models.MustMoney("200"), start.Add(time.Hour)))
	assert.True(t, l.Remaining.IsZero())
}

func TestTrackerRollsExpiredWindowBeforeEvaluating(t *testing.T) {
	// Configured at T, consulted at T+period+1s: the window is reset first
	// and the new debit is evaluated against the full cap.
	cfg := DefaultConfig()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := dayLimit("500", "0", start, cfg)

	now := start.Add(24*time.Hour + time.Second)
	require.NoError(t, NewTracker(l, cfg).Reserve(models.MustMoney("400"), now))

	assert.True(t, l.Remaining.Equal(models.MustMoney("100")))
	assert.Equal(t, now, l.WindowStart)
	assert.Equal(t, now.Add(24*time.Hour), l.WindowEnd)
	// A roll never increases the cap.
	assert.True(t, l.Cap.Equal(models.MustMoney("500")))
}

func TestTrackerRollAtExactWindowEnd(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := dayLimit("500", "10", start, cfg)

	// now == windowEnd counts as expired.
	tr := NewTracker(l, cfg)
	assert.True(t, tr.Expired(l.WindowEnd))
	require.NoError(t, tr.Reserve(models.MustMoney("500"), l.WindowEnd))
	assert.True(t, l.Remaining.IsZero())
}

func TestMonthWindowUsesCalendarMonths(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	end := cfg.WindowEnd(models.LimitKindMonth, start)
	// AddDate normalizes Jan 31 + 1 month.
	assert.Equal(t, start.AddDate(0, 1, 0), end)

	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), cfg.WindowEnd(models.LimitKindMonth, feb))
}

func TestConfigNormalizeDefaults(t *testing.T) {
	var cfg Config
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(24*time.Hour), cfg.WindowEnd(models.LimitKindDay, start))
	assert.Equal(t, start.AddDate(0, 1, 0), cfg.WindowEnd(models.LimitKindMonth, start))
}
