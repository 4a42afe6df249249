// Package parse extracts relative-offset durations and location phrases
// from transcribed utterances.
//
// Extraction order matters: a request like "what time is it in London in
// 5 hours" would let a location pattern capture "5 hours" as a place. The
// duration extractor therefore removes the offset phrase from the utterance
// before the location pattern runs against the remainder.
package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Duration is a non-negative calendar offset. Weeks and days are kept apart
// from the clock portion so that calendar arithmetic can cross month, year
// and DST boundaries correctly.
type Duration struct {
	Weeks   int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether no future offset was requested.
func (d Duration) IsZero() bool {
	return d.Weeks == 0 && d.Days == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// Timespan returns the sub-day portion of the offset.
func (d Duration) Timespan() time.Duration {
	return time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

// numberWords is the en-US numeral vocabulary for offset phrases.
var numberWords = map[string]int{
	"a": 1, "an": 1, "a couple": 2, "a couple of": 2,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50, "sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// DurationExtractor pulls relative-offset phrases out of an utterance using
// a locale numeral/unit vocabulary. Patterns are compiled once.
type DurationExtractor struct {
	phraseRe   *regexp.Regexp
	fragmentRe *regexp.Regexp
	halfRe     *regexp.Regexp
}

// NewDurationExtractor builds the extractor for the given language. Only
// "en-us" vocabulary ships today; other languages fall back to it.
func NewDurationExtractor(lang string) *DurationExtractor {
	words := make([]string, 0, len(numberWords))
	for w := range numberWords {
		words = append(words, regexp.QuoteMeta(w))
	}
	// Longest alternative first so "a couple of" wins over "a".
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })

	// Compound tens come first so "twenty five" is consumed whole instead
	// of matching "twenty" and leaving "five" behind as a separate phrase.
	tens := `(?:twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)`
	ones := `(?:one|two|three|four|five|six|seven|eight|nine)`
	numeral := `(?:\d+|` + tens + `\s+` + ones + `|` + strings.Join(words, "|") + `)`
	unit := `(?:seconds?|minutes?|hours?|days?|weeks?)`
	fragment := numeral + `\s+` + unit + `(?:\s+and\s+a\s+half)?`
	// The introducing "in"/"within" is part of the offset phrase and is
	// removed with it, so it cannot dangle in front of the location pattern.
	intro := `(?:in\s+|within\s+)?`

	return &DurationExtractor{
		phraseRe:   regexp.MustCompile(`(?i)\b` + intro + fragment + `(?:\s+and\s+` + fragment + `)*\b`),
		fragmentRe: regexp.MustCompile(`(?i)\b(` + numeral + `)\s+(` + unit + `)(\s+and\s+a\s+half)?\b`),
		halfRe:     regexp.MustCompile(`(?i)\b` + intro + `(?:a\s+)?half\s+(?:an?\s+)?(second|minute|hour|day|week)\b`),
	}
}

// Extract scans the utterance for relative-offset phrases, removes the
// matched spans and returns the remainder plus the cumulative duration.
// Utterances with no numeric content come back untouched with a zero
// duration; extraction never fails.
func (e *DurationExtractor) Extract(utterance string) (string, Duration) {
	var d Duration
	remainder := utterance

	// "half an hour" must run before the numeral pattern, which would
	// otherwise claim its "an hour" tail as a full hour.
	for _, frag := range e.halfRe.FindAllStringSubmatch(remainder, -1) {
		d.addHalf(strings.ToLower(frag[1]))
	}
	remainder = e.halfRe.ReplaceAllString(remainder, " ")

	for _, span := range e.phraseRe.FindAllString(remainder, -1) {
		for _, frag := range e.fragmentRe.FindAllStringSubmatch(span, -1) {
			value := numberValue(frag[1])
			unit := strings.TrimSuffix(strings.ToLower(frag[2]), "s")
			d.add(unit, value)
			if frag[3] != "" {
				d.addHalf(unit)
			}
		}
	}
	remainder = e.phraseRe.ReplaceAllString(remainder, " ")

	if d.IsZero() {
		return utterance, Duration{}
	}
	return strings.Join(strings.Fields(remainder), " "), d
}

func numberValue(s string) int {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	if n, ok := numberWords[s]; ok {
		return n
	}
	// Compound tens, e.g. "twenty five".
	if tens, ones, found := strings.Cut(s, " "); found {
		t, tok := numberWords[tens]
		o, ook := numberWords[ones]
		if tok && ook {
			return t + o
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func (d *Duration) add(unit string, value int) {
	switch unit {
	case "week":
		d.Weeks += value
	case "day":
		d.Days += value
	case "hour":
		d.Hours += value
	case "minute":
		d.Minutes += value
	case "second":
		d.Seconds += value
	}
}

// addHalf folds "and a half" into the next smaller unit. Half a second is
// below the resolution the skill speaks and is dropped.
func (d *Duration) addHalf(unit string) {
	switch unit {
	case "week":
		d.Days += 3
		d.Hours += 12
	case "day":
		d.Hours += 12
	case "hour":
		d.Minutes += 30
	case "minute":
		d.Seconds += 30
	}
}
