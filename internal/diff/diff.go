// Package diff implements parsing and fuzzy application of unified diffs
// proposed by AI assistants. Model-generated diffs frequently miscount line
// numbers and paraphrase the "old" content, so application degrades through a
// cascade of matching strategies instead of failing on the first mismatch.
package diff

// LineKind classifies a single line within a hunk.
type LineKind int

const (
	// Context is an unchanged line used for positional anchoring.
	Context LineKind = iota
	// Add is a line inserted by the hunk (+ prefix).
	Add
	// Remove is a line deleted by the hunk (- prefix).
	Remove
)

// String returns the kind as a lowercase name for logging.
func (k LineKind) String() string {
	switch k {
	case Context:
		return "context"
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// DiffLine is one parsed line of a hunk body. Immutable once parsed.
type DiffLine struct {
	Kind    LineKind
	Content string
}

// Hunk is one contiguous change region within a diff. OldStart and NewStart
// are 1-based line numbers taken from the hunk header; they are search hints,
// not guarantees, because the source AI output may miscount.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []DiffLine
}

// OldPattern returns the content the hunk claims currently exists in the
// file: every context and remove line, in original order.
func (h Hunk) OldPattern() []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == Context || l.Kind == Remove {
			out = append(out, l.Content)
		}
	}
	return out
}

// NewContent returns the content the hunk produces: every context and add
// line, in original order.
func (h Hunk) NewContent() []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == Context || l.Kind == Add {
			out = append(out, l.Content)
		}
	}
	return out
}

// RemovedLines returns the content of the remove lines, in order.
func (h Hunk) RemovedLines() []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == Remove {
			out = append(out, l.Content)
		}
	}
	return out
}

// AddedLines returns the content of the add lines, in order.
func (h Hunk) AddedLines() []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == Add {
			out = append(out, l.Content)
		}
	}
	return out
}

func (h Hunk) countKind(kind LineKind) int {
	n := 0
	for _, l := range h.Lines {
		if l.Kind == kind {
			n++
		}
	}
	return n
}

// ParsedDiff is a structured diff addressed to a single destination file.
// Hunks keep the order they appeared in the diff text.
type ParsedDiff struct {
	FileName string
	Hunks    []Hunk
}
