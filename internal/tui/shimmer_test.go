package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShimmer_CenterSweepsThenHolds(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewShimmer(DefaultShimmerConfig(), start)

	assert.InDelta(t, -2.5, s.Center(10, start), 0.001)
	assert.InDelta(t, 5.0, s.Center(10, start.Add(900*time.Millisecond)), 0.001)
	assert.InDelta(t, 12.5, s.Center(10, start.Add(2*time.Second)), 0.001)

	// next sweep starts again from the left
	assert.InDelta(t, -2.5, s.Center(10, start.Add(2300*time.Millisecond)), 0.001)
}

func TestShimmer_ReducedMotionIsStatic(t *testing.T) {
	cfg := DefaultShimmerConfig()
	cfg.ReduceMotion = true
	s := NewShimmer(cfg, time.Now())

	out := s.Render("hello", time.Now())
	assert.Equal(t, renderStaticShimmerText("hello"), out)
	assert.False(t, s.Active())
}

func TestShimmer_KeepsEveryGlyph(t *testing.T) {
	s := NewShimmer(DefaultShimmerConfig(), time.Now())
	out := s.Render("héllo", time.Now())
	for _, r := range "héllo" {
		assert.True(t, strings.ContainsRune(out, r))
	}
	assert.Empty(t, s.Render("", time.Now()))
}
