package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"thirty days out", now.AddDate(0, 0, 30), 30},
		{"tomorrow", now.AddDate(0, 0, 1), 1},
		{"later today counts as zero", time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local), 0},
		{"earlier today counts as zero", time.Date(2025, 3, 10, 0, 1, 0, 0, time.Local), 0},
		{"yesterday", now.AddDate(0, 0, -1), -1},
		{"long expired", now.AddDate(0, 0, -45), -45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(tt.expiry, now))
		})
	}
}

func TestDaysUntilExpiryIgnoresTimeOfDay(t *testing.T) {
	// A subscription expiring at 00:01 tomorrow is "1 day away" even when the
	// clock says 23:59 today; the difference is by calendar date.
	now := time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local)
	expiry := time.Date(2025, 3, 11, 0, 1, 0, 0, time.Local)
	assert.Equal(t, 1, DaysUntilExpiry(expiry, now))
}

func TestDaysUntilExpiryAcrossLocations(t *testing.T) {
	// An expiry scanned from the database in UTC must be read on the local
	// clock's calendar. 19:00 UTC on the 15th is already 00:30 on the 16th
	// in IST, so it is one day away, not zero.
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, ist)
	expiry := time.Date(2025, 6, 15, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntilExpiry(expiry, now))

	// And the other direction: a UTC timestamp late on the 15th is still the
	// 15th for a clock west of Greenwich.
	pst := time.FixedZone("PST", -8*3600)
	now = time.Date(2025, 6, 15, 10, 0, 0, 0, pst)
	expiry = time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntilExpiry(expiry, now))
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		stored string
		expiry time.Time
		want   string
	}{
		{"far from expiry", StatusActive, now.AddDate(0, 0, 90), StatusActive},
		{"just outside the window", StatusActive, now.AddDate(0, 0, 31), StatusActive},
		{"window boundary", StatusActive, now.AddDate(0, 0, 30), StatusExpiring},
		{"inside the window", StatusActive, now.AddDate(0, 0, 5), StatusExpiring},
		{"expires today", StatusActive, now, StatusExpiring},
		{"past expiry", StatusActive, now.AddDate(0, 0, -1), StatusOverdue},
		{"stale stored active is overridden", StatusActive, now.AddDate(0, 0, -10), StatusOverdue},
		{"stale stored expiring is overridden", StatusExpiring, now.AddDate(0, 0, 90), StatusActive},
		{"renewed wins regardless of expiry", StatusRenewed, now.AddDate(0, 0, -10), StatusRenewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{Status: tt.stored, ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, sub.EffectiveStatus(now))
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusRenewed))
	assert.False(t, ValidStatus("cancelled"))
	assert.False(t, ValidStatus(""))
}

func TestValidFrequency(t *testing.T) {
	assert.True(t, ValidFrequency(FrequencyMonthly))
	assert.True(t, ValidFrequency(FrequencyCustom))
	assert.False(t, ValidFrequency("weekly"))
}
