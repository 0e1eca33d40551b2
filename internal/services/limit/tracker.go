package limit

import (
	"time"

	"cardbank/internal/models"
)

// Config sets the rolling window length per limit kind.
type Config struct {
	// DayWindow is the length of a DAY window.
	DayWindow time.Duration
	// MonthSpan is the number of calendar months a MONTH window covers.
	MonthSpan int
}

// DefaultConfig rolls DAY limits every 24 hours and MONTH limits every
// calendar month.
func DefaultConfig() Config {
	return Config{DayWindow: 24 * time.Hour, MonthSpan: 1}
}

func (c Config) normalize() Config {
	if c.DayWindow <= 0 {
		c.DayWindow = 24 * time.Hour
	}
	if c.MonthSpan <= 0 {
		c.MonthSpan = 1
	}
	return c
}

// WindowEnd computes the end of a window starting at start for the given kind.
func (c Config) WindowEnd(kind models.LimitKind, start time.Time) time.Time {
	c = c.normalize()
	if kind == models.LimitKindMonth {
		return start.AddDate(0, c.MonthSpan, 0)
	}
	return start.Add(c.DayWindow)
}

// Tracker wraps one CardLimit row and applies the rolling-window rules to
// it. It mutates only the wrapped row; persistence is the caller's concern.
type Tracker struct {
	Limit *models.CardLimit
	cfg   Config
}

func NewTracker(l *models.CardLimit, cfg Config) Tracker {
	return Tracker{Limit: l, cfg: cfg.normalize()}
}

// Expired reports whether the window has ended at the given instant.
func (t Tracker) Expired(now time.Time) bool {
	return !now.Before(t.Limit.WindowEnd)
}

// Roll starts a fresh window at now: remaining back to cap, new start/end.
// A roll never changes the cap.
func (t Tracker) Roll(now time.Time) {
	t.Limit.Remaining = t.Limit.Cap
	t.Limit.WindowStart = now
	t.Limit.WindowEnd = t.cfg.WindowEnd(t.Limit.Kind, now)
}

// Reserve applies a prospective debit of amount at now. An expired window is
// rolled first. If the remaining allowance cannot cover the amount the
// tracker is left unchanged (beyond the roll) and an ExceededError is
// returned; otherwise the allowance is reduced.
func (t Tracker) Reserve(amount models.Money, now time.Time) error {
	if t.Expired(now) {
		t.Roll(now)
	}

	projected := t.Limit.Remaining.Sub(amount)
	if projected.IsNegative() {
		return &ExceededError{Kind: t.Limit.Kind}
	}

	t.Limit.Remaining = projected
	return nil
}
