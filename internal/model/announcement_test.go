package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnnouncementActiveAt(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	t.Run("no window is always active", func(t *testing.T) {
		a := &Announcement{}
		assert.True(t, a.ActiveAt(now))
	})

	t.Run("inside window", func(t *testing.T) {
		a := &Announcement{StartsAt: &before, EndsAt: &after}
		assert.True(t, a.ActiveAt(now))
	})

	t.Run("not started yet", func(t *testing.T) {
		a := &Announcement{StartsAt: &after}
		assert.False(t, a.ActiveAt(now))
	})

	t.Run("already ended", func(t *testing.T) {
		a := &Announcement{EndsAt: &before}
		assert.False(t, a.ActiveAt(now))
	})

	t.Run("boundary timestamps are inclusive", func(t *testing.T) {
		a := &Announcement{StartsAt: &now, EndsAt: &now}
		assert.True(t, a.ActiveAt(now))
	})
}
