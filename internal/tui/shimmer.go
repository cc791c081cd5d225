package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// ShimmerConfig holds configuration for shimmer effects
type ShimmerConfig struct {
	Enabled      bool          // animations: on|off
	ReduceMotion bool          // if true → use static highlight
	WidthRatio   float64       // width of the light band relative to the text
	Cycle        time.Duration // time for one sweep across the text
	Pause        time.Duration // pause between sweeps
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:    true,
		WidthRatio: 0.25,
		Cycle:      1800 * time.Millisecond,
		Pause:      500 * time.Millisecond,
	}
}

// Shimmer sweeps a light band across a line of text.
// Its position is a pure function of the time since Reset, so the list
// view only has to re-render on its animation frames.
type Shimmer struct {
	Config    ShimmerConfig
	trueColor bool
	start     time.Time
}

// NewShimmer creates a shimmer starting at now
func NewShimmer(config ShimmerConfig, now time.Time) *Shimmer {
	return &Shimmer{
		Config:    config,
		trueColor: os.Getenv("COLORTERM") == "truecolor",
		start:     now,
	}
}

// Reset restarts the sweep, called when the selection changes
func (s *Shimmer) Reset(now time.Time) {
	s.start = now
}

// Active reports whether the shimmer animates at all
func (s *Shimmer) Active() bool {
	return s.Config.Enabled && !s.Config.ReduceMotion
}

// Center is the band position in glyphs at now; it runs from before the
// first glyph to past the last one and then holds during the pause
func (s *Shimmer) Center(textLen int, now time.Time) float64 {
	margin := float64(textLen) * s.Config.WidthRatio
	period := s.Config.Cycle + s.Config.Pause
	if period <= 0 || s.Config.Cycle <= 0 {
		return -margin
	}
	elapsed := now.Sub(s.start) % period
	if elapsed < 0 {
		elapsed += period
	}
	if elapsed >= s.Config.Cycle {
		return float64(textLen) + margin
	}
	progress := float64(elapsed) / float64(s.Config.Cycle)
	return -margin + progress*(float64(textLen)+2*margin)
}

// Render draws text with the band at its position for now
func (s *Shimmer) Render(text string, now time.Time) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if !s.Active() {
		return renderStaticShimmerText(text)
	}
	center := s.Center(len(runes), now)
	if !s.trueColor {
		return renderFallbackShimmerText(runes, center, s.Config.WidthRatio)
	}
	return renderTrueColorShimmer(runes, center, s.Config.WidthRatio)
}

// renderTrueColorShimmer blends each glyph between the base and highlight
// colours along a gaussian centred on the band
func renderTrueColorShimmer(text []rune, center, widthRatio float64) string {
	var b strings.Builder

	// Base #B1B8C7, highlight #EAE6FF
	baseR, baseG, baseB := 177, 184, 199
	highlightR, highlightG, highlightB := 234, 230, 255

	sigma := widthRatio * float64(len(text)) / 2.0
	if sigma < 1.0 {
		sigma = 1.0
	}

	for i, char := range text {
		dx := float64(i) - center
		weight := math.Min(1, math.Max(0, math.Exp(-(dx*dx)/(2*sigma*sigma))))

		r := int(float64(baseR)*(1-weight) + float64(highlightR)*weight)
		g := int(float64(baseG)*(1-weight) + float64(highlightG)*weight)
		bl := int(float64(baseB)*(1-weight) + float64(highlightB)*weight)
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c", r, g, bl, char)
	}
	b.WriteString("\033[0m")
	return b.String()
}

// renderStaticShimmerText is the reduced-motion highlight
func renderStaticShimmerText(text string) string {
	return fmt.Sprintf("\033[38;2;167;139;250m%s\033[0m", text) // ColorAccentBright
}

// renderFallbackShimmerText highlights a few glyphs around the band for
// 256-colour terminals
func renderFallbackShimmerText(text []rune, center, widthRatio float64) string {
	highlightWidth := int(widthRatio * float64(len(text)))
	if highlightWidth < 1 {
		highlightWidth = 1
	}
	startHighlight := int(center) - highlightWidth/2
	endHighlight := startHighlight + highlightWidth

	var b strings.Builder
	for i, char := range text {
		if i >= startHighlight && i < endHighlight {
			fmt.Fprintf(&b, "\033[38;5;147m%c", char)
		} else {
			fmt.Fprintf(&b, "\033[38;5;250m%c", char)
		}
	}
	b.WriteString("\033[0m")
	return b.String()
}
