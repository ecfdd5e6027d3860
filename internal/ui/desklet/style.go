package desklet

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ErrInvalidColor indicates a color string that could not be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Style defines desklet visuals.
type Style struct {
	FontSize        float32
	TextColor       color.Color
	BackgroundColor color.Color
}

// DefaultStyle returns white text on a translucent black panel.
func DefaultStyle() Style {
	return Style{
		FontSize:        40,
		TextColor:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		BackgroundColor: color.NRGBA{R: 0, G: 0, B: 0, A: 153},
	}
}

// StateFontSize is the phase label size, half of the clock size.
func (style Style) StateFontSize() float32 {
	return style.FontSize * 0.5
}

// ParseStyle builds a Style from the string form stored in settings.
// Unparseable colors fall back to the default and are reported in the error.
func ParseStyle(fontSize int, textColor, backgroundColor string) (Style, error) {
	style := DefaultStyle()
	if fontSize > 0 {
		style.FontSize = float32(fontSize)
	}

	var errs []error
	if parsed, err := ParseColor(textColor); err == nil {
		style.TextColor = parsed
	} else {
		errs = append(errs, fmt.Errorf("text color: %w", err))
	}
	if parsed, err := ParseColor(backgroundColor); err == nil {
		style.BackgroundColor = parsed
	} else {
		errs = append(errs, fmt.Errorf("background color: %w", err))
	}
	return style, errors.Join(errs...)
}

// ParseColor accepts any CSS color: hex forms, rgb()/rgba() with numbers or
// percentages, hsl(), hwb() and named colors such as "white" or "transparent".
func ParseColor(value string) (color.NRGBA, error) {
	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, strings.TrimSpace(value))
	}
	r, g, b, a := parsed.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
