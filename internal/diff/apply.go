package diff

import (
	"fmt"
	"sort"
	"strings"
)

// ApplyDiff applies every hunk of d to the original file text and returns the
// reconstructed text, lines rejoined with a single newline. It fails with a
// descriptive error if any hunk cannot be placed; no partial text is returned
// in that case.
func ApplyDiff(original string, d *ParsedDiff) (string, error) {
	lines, err := ApplyToLines(strings.Split(original, "\n"), d)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// ApplyToLines applies d to an owned line buffer. Hunks are processed in
// descending OldStart order so splices near the bottom of the file do not
// shift the hint positions of hunks above them; each hunk is still relocated
// independently by the strategy cascade.
//
// On error the returned buffer reflects any hunks applied before the failure.
// Callers wanting all-or-nothing semantics should use ApplyDiff.
func ApplyToLines(lines []string, d *ParsedDiff) ([]string, error) {
	hunks := make([]Hunk, len(d.Hunks))
	copy(hunks, d.Hunks)
	sort.SliceStable(hunks, func(i, j int) bool {
		return hunks[i].OldStart > hunks[j].OldStart
	})

	for i, h := range hunks {
		m, err := locateHunk(lines, h)
		if err != nil {
			return lines, fmt.Errorf("hunk %d of %d: %w", i+1, len(hunks), err)
		}
		lines = splice(lines, m)
	}
	return lines, nil
}

// splice replaces m.del lines starting at m.start with m.insert.
func splice(lines []string, m match) []string {
	end := m.start + m.del
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]string, 0, len(lines)-(end-m.start)+len(m.insert))
	out = append(out, lines[:m.start]...)
	out = append(out, m.insert...)
	out = append(out, lines[end:]...)
	return out
}
