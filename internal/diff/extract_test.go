package diff

import (
	"strings"
	"testing"
)

func TestExtractor_TwoBlocks(t *testing.T) {
	text := "Here are the edits you asked for.\n\n" +
		"```diff\n--- a/daily.md\n+++ b/daily.md\n@@ -1 +1 @@\n-old\n+new\n```\n\n" +
		"And the second file:\n\n" +
		"```diff\n--- a/weekly.md\n+++ b/weekly.md\n@@ -2 +2 @@\n-foo\n+bar\n```\n"

	blocks := NewExtractor().Extract(text)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	if blocks[0].FileName != "daily.md" || blocks[1].FileName != "weekly.md" {
		t.Errorf("file names = %q, %q", blocks[0].FileName, blocks[1].FileName)
	}
	if blocks[0].ID == blocks[1].ID || blocks[0].ID == "" {
		t.Errorf("block IDs not unique: %q, %q", blocks[0].ID, blocks[1].ID)
	}
	for i, b := range blocks {
		if b.Status != StatusPending {
			t.Errorf("block %d status = %v, want pending", i, b.Status)
		}
		if b.Parsed == nil {
			t.Errorf("block %d not parsed", i)
		}
		if strings.Contains(b.RawDiff, "```") {
			t.Errorf("block %d raw diff contains fence: %q", i, b.RawDiff)
		}
	}
}

func TestExtractor_NoBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain prose", "No edits needed, the note already looks good."},
		{"non-diff fence", "```go\nfunc main() {}\n```"},
		{"unterminated fence", "```diff\n--- a/n.md\n+++ b/n.md\n@@ -1 +1 @@\n-x\n+y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if blocks := NewExtractor().Extract(tt.text); len(blocks) != 0 {
				t.Errorf("got %d blocks, want 0", len(blocks))
			}
		})
	}
}

func TestExtractor_UnparseableBlockKeepsPlaceholder(t *testing.T) {
	text := "```diff\nnot a real diff at all\njust some text\nmore text\n```"

	blocks := NewExtractor().Extract(text)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Parsed != nil {
		t.Errorf("Parsed = %+v, want nil", b.Parsed)
	}
	if b.FileName != UnknownFile {
		t.Errorf("FileName = %q, want %q", b.FileName, UnknownFile)
	}
	if b.RawDiff == "" {
		t.Error("RawDiff should keep the fenced body for display")
	}
}

func TestExtractor_IndentedFences(t *testing.T) {
	text := "  ```diff\n--- a/n.md\n+++ b/n.md\n@@ -1 +1 @@\n-x\n+y\n  ```"

	blocks := NewExtractor().Extract(text)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].FileName != "n.md" {
		t.Errorf("FileName = %q, want n.md", blocks[0].FileName)
	}
}
