package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/taskflow/internal/notify"
	"github.com/balkashynov/taskflow/internal/view"
)

// Color constants for the taskflow theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240"

	// Accent Colors
	ColorAccentMain   = "#7C3AED"
	ColorAccentBright = "#A78BFA"

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
	ColorInfo    = "#38BDF8"
)

var toneColors = map[view.Tone]string{
	view.ToneDanger:  ColorError,
	view.ToneWarning: ColorWarning,
	view.ToneSuccess: ColorSuccess,
	view.ToneInfo:    ColorInfo,
}

var kindColors = map[notify.Kind]string{
	notify.KindError:   ColorError,
	notify.KindWarning: ColorWarning,
	notify.KindSuccess: ColorSuccess,
	notify.KindInfo:    ColorInfo,
}

// toneStyle colours text by its display tone
func toneStyle(t view.Tone) lipgloss.Style {
	c, ok := toneColors[t]
	if !ok {
		c = ColorSecondaryText
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func kindColor(k notify.Kind) lipgloss.Color {
	c, ok := kindColors[k]
	if !ok {
		c = ColorInfo
	}
	return lipgloss.Color(c)
}
