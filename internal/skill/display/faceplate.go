package display

// Glyph is a lighting code positioned on the faceplate grid.
type Glyph struct {
	X    int
	Y    int
	Code GlyphCode
}

const (
	colonWidth = 2
	digitWidth = 4

	// alarmX places the alarm indicator past the rightmost digit.
	alarmX     = 29
	alarmGlyph = GlyphCode("CIAA")
)

// LayoutTime positions the glyphs for a formatted time string, centering
// four-character times ("H:MM") and starting five-character times ("HH:MM")
// at the left edge. When alarm is set an indicator dot is appended.
func LayoutTime(displayTime string, alarm bool) []Glyph {
	x := 2
	if len(displayTime) == 5 {
		x = 0
	}

	glyphs := make([]Glyph, 0, len(displayTime)+1)
	for _, ch := range displayTime {
		code, ok := glyphCodes[ch]
		if !ok {
			code = BlankGlyph
		}
		glyphs = append(glyphs, Glyph{X: x, Y: 2, Code: code})
		if ch == ':' {
			x += colonWidth
		} else {
			x += digitWidth
		}
	}

	if alarm {
		glyphs = append(glyphs, Glyph{X: alarmX, Y: 2, Code: alarmGlyph})
	}
	return glyphs
}
