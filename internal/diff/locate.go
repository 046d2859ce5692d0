package diff

import (
	"fmt"
	"regexp"
	"strings"
)

// Search radii for the hint-centered expanding searches. Strategy 1 probes a
// window of lines around the hint; strategies 2-4 probe single lines.
const (
	windowSearchRadius = 50
	anchorSearchRadius = 100
)

// match is the result of a successful locate: replace del lines starting at
// start with the insert lines. Locating is decoupled from splicing so each
// strategy stays a pure function over the buffer.
type match struct {
	start  int
	del    int
	insert []string
}

// locateHunk tries the five matching strategies in order of decreasing
// precision and returns the first successful match. The cascade trades
// precision for robustness: the typical diffs are model-generated, and
// failing outright on any mismatch would make the edit tool unusable.
func locateHunk(lines []string, h Hunk) (match, error) {
	hint := h.OldStart - 1

	if m, ok := findExactWindow(lines, h, hint); ok {
		return m, nil
	}
	if m, ok := findContextAnchor(lines, h, hint); ok {
		return m, nil
	}
	if m, ok := findFirstRemove(lines, h, hint); ok {
		return m, nil
	}
	if m, ok := findPureAddition(lines, h, hint); ok {
		return m, nil
	}
	if m, ok := positionFallback(lines, h, hint); ok {
		return m, nil
	}

	sought := firstNonBlank(h.OldPattern())
	if sought == "" {
		sought = firstNonBlank(h.NewContent())
	}
	return match{}, fmt.Errorf("cannot place hunk near line %d: could not find %q; the file structure may have diverged from what the diff expected", h.OldStart, sought)
}

// findExactWindow (strategy 1) searches for a contiguous run of buffer lines
// matching the hunk's old pattern line-by-line. Matching trims whitespace on
// both sides, and a blank pattern line is a wildcard. The hint is probed
// first, then alternately before/after it out to windowSearchRadius, then the
// whole buffer is scanned linearly.
func findExactWindow(lines []string, h Hunk, hint int) (match, bool) {
	pattern := h.OldPattern()

	fits := func(start int) bool {
		return start >= 0 && start+len(pattern) <= len(lines)
	}
	matchesAt := func(start int) bool {
		for i, p := range pattern {
			want := strings.TrimSpace(p)
			if want == "" {
				continue
			}
			if strings.TrimSpace(lines[start+i]) != want {
				return false
			}
		}
		return true
	}

	found := -1
	switch {
	case fits(hint) && matchesAt(hint):
		found = hint
	default:
		for d := 1; d <= windowSearchRadius && found < 0; d++ {
			if i := hint - d; fits(i) && matchesAt(i) {
				found = i
				break
			}
			if i := hint + d; fits(i) && matchesAt(i) {
				found = i
				break
			}
		}
		if found < 0 {
			for i := 0; i+len(pattern) <= len(lines); i++ {
				if matchesAt(i) {
					found = i
					break
				}
			}
		}
	}

	if found < 0 {
		return match{}, false
	}
	return match{start: found, del: len(pattern), insert: h.NewContent()}, true
}

// findContextAnchor (strategy 2) re-locates a hunk from its first non-blank
// context line when whole-pattern matching failed. The anchor is matched
// fuzzily, so a context line like "11:48am - Title" still anchors on a buffer
// line holding just "11:48am". The anchor's offset within the old pattern
// gives the hunk's true start; from there, buffer lines are counted as
// matching while they resemble the pattern, with a floor of one line so the
// splice always removes something.
func findContextAnchor(lines []string, h Hunk, hint int) (match, bool) {
	pattern := h.OldPattern()

	anchor := ""
	anchorOffset := -1
	patIdx := 0
	for _, l := range h.Lines {
		if l.Kind == Add {
			continue
		}
		if l.Kind == Context && anchorOffset < 0 && strings.TrimSpace(l.Content) != "" {
			anchor = l.Content
			anchorOffset = patIdx
		}
		patIdx++
	}
	if anchorOffset < 0 {
		return match{}, false
	}

	idx := findLineNear(lines, hint, anchorSearchRadius, func(s string) bool {
		return fuzzyLineMatch(s, anchor)
	})
	if idx < 0 {
		return match{}, false
	}

	start := idx - anchorOffset
	if start < 0 {
		return match{}, false
	}

	count := 0
	for i, p := range pattern {
		j := start + i
		if j >= len(lines) || !fuzzyLineMatch(lines[j], p) {
			break
		}
		count++
	}
	if count < 1 {
		count = 1
	}

	return match{start: start, del: count, insert: h.NewContent()}, true
}

// findFirstRemove (strategy 3) locates the first non-blank removed line under
// a relaxed similarity test, then walks forward counting how many subsequent
// buffer lines still resemble the removed block. The first line always
// counts, even when it is not a perfect match.
func findFirstRemove(lines []string, h Hunk, hint int) (match, bool) {
	removes := h.RemovedLines()

	seekIdx := -1
	for i, r := range removes {
		if strings.TrimSpace(r) != "" {
			seekIdx = i
			break
		}
	}
	if seekIdx < 0 {
		return match{}, false
	}
	seek := removes[seekIdx]

	idx := findLineNear(lines, hint, anchorSearchRadius, func(s string) bool {
		return similarLines(s, seek)
	})
	if idx < 0 {
		return match{}, false
	}

	count := 1
	for i := seekIdx + 1; i < len(removes); i++ {
		j := idx + (i - seekIdx)
		if j >= len(lines) || !similarLines(lines[j], removes[i]) {
			break
		}
		count++
	}

	return match{start: idx, del: count, insert: h.NewContent()}, true
}

// findPureAddition (strategy 4) handles hunks with no removals: the add lines
// are inserted immediately after the last non-blank context line, deleting
// nothing.
func findPureAddition(lines []string, h Hunk, hint int) (match, bool) {
	if h.countKind(Remove) > 0 || h.countKind(Add) == 0 || h.countKind(Context) == 0 {
		return match{}, false
	}

	anchor := ""
	for _, l := range h.Lines {
		if l.Kind == Context && strings.TrimSpace(l.Content) != "" {
			anchor = strings.TrimSpace(l.Content)
		}
	}
	if anchor == "" {
		return match{}, false
	}

	idx := findLineNear(lines, hint, anchorSearchRadius, func(s string) bool {
		return strings.TrimSpace(s) == anchor
	})
	if idx < 0 {
		return match{}, false
	}

	return match{start: idx + 1, del: 0, insert: h.AddedLines()}, true
}

// positionFallback (strategy 5) is a best-effort guess with no content
// verification: splice at the hint, removing at most as many lines as the
// hunk removes and as remain in the buffer.
func positionFallback(lines []string, h Hunk, hint int) (match, bool) {
	if hint < 0 || hint >= len(lines) {
		return match{}, false
	}
	del := h.countKind(Remove)
	if rest := len(lines) - hint; del > rest {
		del = rest
	}
	return match{start: hint, del: del, insert: h.NewContent()}, true
}

// findLineNear probes the hint first, then alternately before/after it out to
// radius, returning the index of the first line satisfying ok, or -1.
func findLineNear(lines []string, hint, radius int, ok func(string) bool) int {
	inBounds := func(i int) bool { return i >= 0 && i < len(lines) }

	if inBounds(hint) && ok(lines[hint]) {
		return hint
	}
	for d := 1; d <= radius; d++ {
		if i := hint - d; inBounds(i) && ok(lines[i]) {
			return i
		}
		if i := hint + d; inBounds(i) && ok(lines[i]) {
			return i
		}
	}
	return -1
}

// fuzzyLineMatch reports whether a buffer line resembles a pattern line:
// both blank, exactly equal after trim, or the pattern carries a " - "
// separated suffix (timestamp-with-title convention) the buffer line lacks.
func fuzzyLineMatch(bufLine, patLine string) bool {
	b := strings.TrimSpace(bufLine)
	p := strings.TrimSpace(patLine)
	if b == p {
		return true
	}
	if sep := strings.Index(p, " - "); sep > 0 && b == strings.TrimSpace(p[:sep]) {
		return true
	}
	return false
}

// timeOfDayRegex matches a leading time-of-day token like "11:48am" or "9:05".
var timeOfDayRegex = regexp.MustCompile(`^(?i)\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?`)

// similarLines is the relaxed equivalence used for removed-line matching:
// exact after trim, a shared leading time-of-day token, or one line being a
// string prefix of the other.
func similarLines(a, b string) bool {
	at := strings.TrimSpace(a)
	bt := strings.TrimSpace(b)
	if at == bt {
		return true
	}
	if at == "" || bt == "" {
		return false
	}
	if ta := timeOfDayRegex.FindString(at); ta != "" && ta == timeOfDayRegex.FindString(bt) {
		return true
	}
	return strings.HasPrefix(at, bt) || strings.HasPrefix(bt, at)
}

func firstNonBlank(lines []string) string {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}
