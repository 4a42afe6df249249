// Package display turns computed date-times into the strings and glyph
// sequences shown on a faceplate or screen.
package display

import (
	"fmt"
	"time"
)

// FormatTime renders the time shown on a display: zero-padded "HH:MM" for
// 24-hour preference, "H:MM" otherwise. The am/pm marker is carried by
// speech, not the display.
func FormatTime(t time.Time, format24h bool) string {
	if format24h {
		return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d", hour, t.Minute())
}

// FormatSpokenTime renders the time substituted into spoken phrases. In
// 12-hour mode the am/pm marker is appended; without it the phrase could
// not distinguish 9:30 from 21:30.
func FormatSpokenTime(t time.Time, format24h bool) string {
	formatted := FormatTime(t, format24h)
	if format24h {
		return formatted
	}
	if t.Hour() < 12 {
		return formatted + " AM"
	}
	return formatted + " PM"
}

// GlyphCode is a segmented-display lighting pattern for one character.
type GlyphCode string

// BlankGlyph lights no segments; every unmapped character renders as it.
const BlankGlyph GlyphCode = "EIAAAAAAAA"

// glyphCodes maps the characters a time string can contain to faceplate
// lighting patterns.
var glyphCodes = map[rune]GlyphCode{
	':': "CIICAA",
	'0': "EIMHEEMHAA",
	'1': "EIIEMHAEAA",
	'2': "EIEHEFMFAA",
	'3': "EIEFEFMHAA",
	'4': "EIMBABMHAA",
	'5': "EIMFEFEHAA",
	'6': "EIMHEFEHAA",
	'7': "EIEAEAMHAA",
	'8': "EIMHEFMHAA",
	'9': "EIMBEBMHAA",
}

// GlyphsFor maps each character of a display string to its lighting code,
// one code per character. Pure static table lookup.
func GlyphsFor(displayString string) []GlyphCode {
	codes := make([]GlyphCode, 0, len(displayString))
	for _, ch := range displayString {
		code, ok := glyphCodes[ch]
		if !ok {
			code = BlankGlyph
		}
		codes = append(codes, code)
	}
	return codes
}
