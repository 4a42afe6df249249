package parse

import (
	"regexp"
	"strings"
)

// locationPatterns holds the per-locale location phrase pattern. The greedy
// prefix anchors the match on the last "in/at" of the utterance, so leading
// clauses ("what time is it in ...") never leak into the capture.
var locationPatterns = map[string]string{
	"en-us": `(?i)^.*\b(?:in|at)\s+([a-zA-Z][a-zA-Z .'-]*?)[\s?.!,]*$`,
}

// LocationExtractor recovers a candidate place name from an offset-stripped
// utterance. Pure; the pattern is compiled once per locale.
type LocationExtractor struct {
	re *regexp.Regexp
}

func NewLocationExtractor(lang string) *LocationExtractor {
	pattern, ok := locationPatterns[strings.ToLower(lang)]
	if !ok {
		pattern = locationPatterns["en-us"]
	}
	return &LocationExtractor{re: regexp.MustCompile(pattern)}
}

// Extract returns the trimmed place text and whether a location phrase was
// present. A missing phrase is not an error; it selects the
// "current device location" branch upstream.
func (e *LocationExtractor) Extract(remainder string) (string, bool) {
	m := e.re.FindStringSubmatch(remainder)
	if m == nil {
		return "", false
	}
	location := strings.TrimSpace(m[1])
	if location == "" {
		return "", false
	}
	return location, true
}
