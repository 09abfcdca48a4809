package verification

import (
	"regexp"
	"strings"
)

// tokenTrim is stripped from both ends of every token so "Inc.," still matches "Inc".
const tokenTrim = `.,;:!?()[]{}"'`

// windowMatch is the fuzzy match of one entity within the candidate text.
type windowMatch struct {
	ratio float64
	text  string
}

// tokenize splits value on whitespace and trims surrounding punctuation from each token.
func tokenize(value string) []string {
	fields := strings.Fields(value)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.Trim(f, tokenTrim); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// compileTokens builds case-insensitive literal matchers, so match offsets index the
// original window rather than a lowered copy.
func compileTokens(tokens []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(tokens))
	for i, t := range tokens {
		res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(t))
	}
	return res
}

// windows returns the [start, end) byte ranges of windows of size runes taken every step
// runes. The final window always reaches the end of text; text shorter than size is one window.
func windows(text string, size, step int) [][2]int {
	bounds := make([]int, 0, len(text)+1)
	for i := range text {
		bounds = append(bounds, i)
	}
	bounds = append(bounds, len(text))
	runes := len(bounds) - 1

	var out [][2]int
	for start := 0; ; start += step {
		end := min(start+size, runes)
		out = append(out, [2]int{bounds[start], bounds[end]})
		if end == runes {
			return out
		}
	}
}

// firstWindow slides a window across candidate and returns the first window in which at least
// threshold of the tokens occur, reporting the text from its first to its last matched token.
// ok is false when no window qualifies.
func firstWindow(tokens []string, candidate string, size, step int, threshold float64) (windowMatch, bool) {
	if len(tokens) == 0 || candidate == "" {
		return windowMatch{}, false
	}
	matchers := compileTokens(tokens)

	for _, w := range windows(candidate, size, step) {
		window := candidate[w[0]:w[1]]

		matched := 0
		first, last := len(window), 0
		for _, re := range matchers {
			loc := re.FindStringIndex(window)
			if loc == nil {
				continue
			}
			matched++
			first = min(first, loc[0])
			last = max(last, loc[1])
		}
		if matched == 0 {
			continue
		}

		ratio := float64(matched) / float64(len(tokens))
		if ratio >= threshold {
			return windowMatch{ratio: ratio, text: window[first:last]}, true
		}
	}
	return windowMatch{}, false
}
