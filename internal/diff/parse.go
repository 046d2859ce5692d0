package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRegex matches "@@ -oldStart[,oldCount] +newStart[,newCount] @@".
// Trailing section text after the closing @@ is tolerated.
var hunkHeaderRegex = regexp.MustCompile(`^@@\s*-(\d+)(?:,(\d+))?\s+\+(\d+)(?:,(\d+))?\s*@@`)

// ParseDiff parses unified-diff text into a ParsedDiff. It returns nil for
// input it cannot act on: fewer than 3 lines, or no destination-file header.
// Malformed input is not an error condition; the caller decides how to
// surface "not a valid diff".
func ParseDiff(diffText string) *ParsedDiff {
	lines := strings.Split(diffText, "\n")
	if len(lines) < 3 {
		// Too short to contain headers and a hunk.
		return nil
	}

	var fileName string
	var hunks []Hunk
	var current *Hunk

	for _, line := range lines {
		if m := hunkHeaderRegex.FindStringSubmatch(line); m != nil {
			// A new hunk header flushes any hunk being built.
			if current != nil {
				hunks = append(hunks, *current)
			}
			current = &Hunk{
				OldStart: mustAtoi(m[1]),
				OldCount: atoiDefault(m[2], 1),
				NewStart: mustAtoi(m[3]),
				NewCount: atoiDefault(m[4], 1),
			}
			continue
		}

		if current != nil {
			current.Lines = append(current.Lines, classifyBodyLine(line))
			continue
		}

		// Between hunks only file headers are meaningful. The destination
		// (+++) side wins; the old (---) side is recognized and discarded.
		if strings.HasPrefix(line, "+++") {
			fileName = stripPathPrefix(strings.TrimSpace(line[3:]))
			continue
		}
		if strings.HasPrefix(line, "---") {
			continue
		}
	}

	// Flush the trailing hunk; it is not silently dropped.
	if current != nil {
		hunks = append(hunks, *current)
	}

	// A diff without a target file is not actionable.
	if fileName == "" {
		return nil
	}

	return &ParsedDiff{FileName: fileName, Hunks: hunks}
}

// classifyBodyLine classifies a hunk body line by its leading character.
// Context lines lose at most one leading space; AI-generated diffs frequently
// omit it, so lines without the space are accepted verbatim.
func classifyBodyLine(line string) DiffLine {
	switch {
	case strings.HasPrefix(line, "+"):
		return DiffLine{Kind: Add, Content: line[1:]}
	case strings.HasPrefix(line, "-"):
		return DiffLine{Kind: Remove, Content: line[1:]}
	case strings.HasPrefix(line, " "):
		return DiffLine{Kind: Context, Content: line[1:]}
	default:
		return DiffLine{Kind: Context, Content: line}
	}
}

// stripPathPrefix removes the conventional "b/" destination path marker.
func stripPathPrefix(name string) string {
	return strings.TrimPrefix(name, "b/")
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
