package diff

import (
	"testing"
)

func TestParseDiff_TooShort(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"one line", "--- a/note.md"},
		{"two lines", "--- a/note.md\n+++ b/note.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDiff(tt.text); got != nil {
				t.Errorf("ParseDiff(%q) = %+v, want nil", tt.text, got)
			}
		})
	}
}

func TestParseDiff_NoDestinationHeader(t *testing.T) {
	// Hunks parse but there is no file to apply them to.
	text := "@@ -1,2 +1,2 @@\n-old\n+new"
	if got := ParseDiff(text); got != nil {
		t.Errorf("ParseDiff() = %+v, want nil without +++ header", got)
	}
}

func TestParseDiff_FileName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "b/ prefix stripped",
			text: "--- a/notes/daily.md\n+++ b/notes/daily.md\n@@ -1 +1 @@\n-x\n+y",
			want: "notes/daily.md",
		},
		{
			name: "no prefix kept verbatim",
			text: "--- daily.md\n+++ daily.md\n@@ -1 +1 @@\n-x\n+y",
			want: "daily.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDiff(tt.text)
			if got == nil {
				t.Fatal("ParseDiff() = nil, want parsed diff")
			}
			if got.FileName != tt.want {
				t.Errorf("FileName = %q, want %q", got.FileName, tt.want)
			}
		})
	}
}

func TestParseDiff_HunkHeaderCounts(t *testing.T) {
	tests := []struct {
		name                       string
		header                     string
		oldStart, oldCount         int
		newStart, newCount         int
	}{
		{"both counts", "@@ -3,4 +5,6 @@", 3, 4, 5, 6},
		{"counts omitted default to 1", "@@ -7 +9 @@", 7, 1, 9, 1},
		{"trailing section text", "@@ -2,3 +2,4 @@ morning entry", 2, 3, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "--- a/n.md\n+++ b/n.md\n" + tt.header + "\n-x\n+y"
			got := ParseDiff(text)
			if got == nil {
				t.Fatalf("ParseDiff() = nil, want parsed diff")
			}
			if len(got.Hunks) != 1 {
				t.Fatalf("got %d hunks, want 1", len(got.Hunks))
			}
			h := got.Hunks[0]
			if h.OldStart != tt.oldStart || h.OldCount != tt.oldCount {
				t.Errorf("old range = %d,%d, want %d,%d", h.OldStart, h.OldCount, tt.oldStart, tt.oldCount)
			}
			if h.NewStart != tt.newStart || h.NewCount != tt.newCount {
				t.Errorf("new range = %d,%d, want %d,%d", h.NewStart, h.NewCount, tt.newStart, tt.newCount)
			}
		})
	}
}

func TestParseDiff_BodyClassification(t *testing.T) {
	text := "--- a/n.md\n+++ b/n.md\n@@ -1,4 +1,4 @@\n context with space\ncontext without space\n-removed\n+added\n"
	got := ParseDiff(text)
	if got == nil {
		t.Fatal("ParseDiff() = nil, want parsed diff")
	}
	lines := got.Hunks[0].Lines

	want := []DiffLine{
		{Kind: Context, Content: "context with space"},
		{Kind: Context, Content: "context without space"},
		{Kind: Remove, Content: "removed"},
		{Kind: Add, Content: "added"},
		{Kind: Context, Content: ""}, // trailing newline parses as empty context
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], w)
		}
	}
}

func TestParseDiff_ContextWithoutSpaceKeepsContent(t *testing.T) {
	// A context line missing its leading space must not lose a character.
	text := "--- a/n.md\n+++ b/n.md\n@@ -1 +1 @@\nverbatim line\n-x\n+y"
	got := ParseDiff(text)
	if got == nil {
		t.Fatal("ParseDiff() = nil, want parsed diff")
	}
	first := got.Hunks[0].Lines[0]
	if first.Kind != Context || first.Content != "verbatim line" {
		t.Errorf("first line = %+v, want verbatim context", first)
	}
}

func TestParseDiff_MultipleHunksKeepOrder(t *testing.T) {
	text := `--- a/n.md
+++ b/n.md
@@ -10,2 +10,2 @@
-old a
+new a
@@ -1,2 +1,2 @@
-old b
+new b`
	got := ParseDiff(text)
	if got == nil {
		t.Fatal("ParseDiff() = nil, want parsed diff")
	}
	if len(got.Hunks) != 2 {
		t.Fatalf("got %d hunks, want 2", len(got.Hunks))
	}
	// Source order is preserved even when starts are descending.
	if got.Hunks[0].OldStart != 10 || got.Hunks[1].OldStart != 1 {
		t.Errorf("hunk starts = %d,%d, want 10,1", got.Hunks[0].OldStart, got.Hunks[1].OldStart)
	}
}

func TestHunk_PatternAndContent(t *testing.T) {
	h := Hunk{Lines: []DiffLine{
		{Kind: Context, Content: "keep"},
		{Kind: Remove, Content: "gone"},
		{Kind: Add, Content: "fresh"},
		{Kind: Context, Content: "tail"},
	}}

	wantOld := []string{"keep", "gone", "tail"}
	wantNew := []string{"keep", "fresh", "tail"}

	if got := h.OldPattern(); !equalStrings(got, wantOld) {
		t.Errorf("OldPattern() = %v, want %v", got, wantOld)
	}
	if got := h.NewContent(); !equalStrings(got, wantNew) {
		t.Errorf("NewContent() = %v, want %v", got, wantNew)
	}
	if got := h.RemovedLines(); !equalStrings(got, []string{"gone"}) {
		t.Errorf("RemovedLines() = %v, want [gone]", got)
	}
	if got := h.AddedLines(); !equalStrings(got, []string{"fresh"}) {
		t.Errorf("AddedLines() = %v, want [fresh]", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
