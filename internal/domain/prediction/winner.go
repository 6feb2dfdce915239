package prediction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonDecisiveResult = regexp.MustCompile(`(?i)\b(tied|tie|abandon(ed)?|no result|draw|drawn|cancell?ed|called off|washed out|no play)\b`)
	tieBreakerPlayed  = regexp.MustCompile(`(?i)\b(super over|eliminator|bowl[- ]out)\b`)
)

const winningVerbs = `(\s+(?:won|wins|win|beat|beats)\b)?`

type span struct {
	start, end int
	phrase     bool
}

// ExtractWinner finds the declared winner in a free-text result line such as
// "India won by 5 wickets". It returns false when the text reports a tie,
// abandonment or no result, and when it cannot tell the candidates apart.
//
// A candidate followed by won/beat wins over bare mentions. Without such a
// phrase a single mentioned candidate is the winner. Mentions of a shorter name
// inside a longer candidate ("India" inside "India A") are ignored.
func ExtractWinner(status string, candidates []string) (string, bool) {
	status = strings.TrimSpace(status)
	if status == "" || len(candidates) == 0 {
		return "", false
	}

	names := uniqueNames(candidates)
	raw := make(map[string][]span, len(names))
	for _, name := range names {
		if found := findSpans(status, name); len(found) > 0 {
			raw[name] = found
		}
	}
	spans := dropShadowedSpans(raw)

	var phrased, mentioned []string
	for _, name := range names {
		found, ok := spans[name]
		if !ok {
			continue
		}
		mentioned = append(mentioned, name)
		for _, s := range found {
			if s.phrase {
				phrased = append(phrased, name)
				break
			}
		}
	}

	if nonDecisiveResult.MatchString(status) {
		// "Match tied (India won the Super Over)" still has a decisive winner.
		if tieBreakerPlayed.MatchString(status) && len(phrased) == 1 {
			return phrased[0], true
		}
		return "", false
	}

	switch {
	case len(phrased) == 1:
		return phrased[0], true
	case len(phrased) > 1:
		return "", false
	case len(mentioned) == 1:
		return mentioned[0], true
	default:
		return "", false
	}
}

func findSpans(status, name string) []span {
	pattern := `(?i)` + boundaryFor(name, true) + `(` + regexp.QuoteMeta(name) + `)` + boundaryFor(name, false) + winningVerbs
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}

	matches := re.FindAllStringSubmatchIndex(status, -1)
	out := make([]span, 0, len(matches))
	for _, m := range matches {
		out = append(out, span{start: m[2], end: m[3], phrase: m[4] >= 0})
	}
	return out
}

// boundaryFor adds a word boundary only where the name edge is a word character.
func boundaryFor(name string, leading bool) string {
	var r rune
	if leading {
		r, _ = utf8.DecodeRuneInString(name)
	} else {
		r, _ = utf8.DecodeLastRuneInString(name)
	}
	if r == '_' || (r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
		return `\b`
	}
	return ""
}

// dropShadowedSpans removes spans of a name that sit inside a span of a longer candidate.
func dropShadowedSpans(spans map[string][]span) map[string][]span {
	out := make(map[string][]span, len(spans))
	for name, own := range spans {
		var kept []span
		for _, s := range own {
			if !coveredByLonger(spans, name, s) {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			out[name] = kept
		}
	}
	return out
}

func uniqueNames(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func coveredByLonger(spans map[string][]span, name string, s span) bool {
	for other, theirs := range spans {
		if other == name || len(other) <= len(name) {
			continue
		}
		for _, t := range theirs {
			if t.start <= s.start && s.end <= t.end {
				return true
			}
		}
	}
	return false
}
