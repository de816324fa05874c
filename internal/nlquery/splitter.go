package nlquery

import "strings"

// segmentStarters are the words that may begin a new question after a "?".
var segmentStarters = []string{"how", "what", "show", "list", "can"}

// SplitSegments splits raw text into independent question segments. A split
// happens at a "?" that is followed, ignoring whitespace and case, by a
// sentence-starting keyword. The splitter is a pure string pre-pass: it
// performs no tokenization, trims each segment and drops empty ones, and
// always returns at least one segment for non-blank input.
func SplitSegments(text string) []string {
	var segments []string
	start := 0

	for i := 0; i < len(text); i++ {
		if text[i] != '?' {
			continue
		}
		rest := i + 1
		for rest < len(text) && isSpace(text[rest]) {
			rest++
		}
		if !startsNewSegment(text[rest:]) {
			continue
		}
		if seg := strings.TrimSpace(text[start:i]); seg != "" {
			segments = append(segments, seg)
		}
		start = rest
		i = rest - 1
	}

	if seg := strings.TrimSpace(text[start:]); seg != "" {
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// startsNewSegment reports whether text begins with a sentence-starting
// keyword as a whole word.
func startsNewSegment(text string) bool {
	for _, starter := range segmentStarters {
		if len(text) < len(starter) {
			continue
		}
		if !strings.EqualFold(text[:len(starter)], starter) {
			continue
		}
		if len(text) == len(starter) || !isWordByte(text[len(starter)]) {
			return true
		}
	}
	return false
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
