package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notemend/notemend/internal/diff"
)

func testBlocks() []diff.DiffBlock {
	text := "```diff\n--- a/daily.md\n+++ b/daily.md\n@@ -1 +1 @@\n-old\n+new\n```\n" +
		"```diff\n--- a/weekly.md\n+++ b/weekly.md\n@@ -1 +1 @@\n-foo\n+bar\n```\n" +
		"```diff\nnot a diff\nat all\nreally\n```\n"
	return diff.NewExtractor().Extract(text)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	panic("unknown key: " + s)
}

func drive(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.Update(key(k))
	}
	return model.(Model)
}

func TestModel_AcceptAndReject(t *testing.T) {
	blocks := testBlocks()
	m := drive(t, NewModel(blocks), "a", "down", "r")

	statuses := m.Statuses()
	if statuses[blocks[0].ID] != diff.StatusAccepted {
		t.Errorf("block 0 = %v, want accepted", statuses[blocks[0].ID])
	}
	if statuses[blocks[1].ID] != diff.StatusRejected {
		t.Errorf("block 1 = %v, want rejected", statuses[blocks[1].ID])
	}
	if statuses[blocks[2].ID] != diff.StatusPending {
		t.Errorf("block 2 = %v, want still pending", statuses[blocks[2].ID])
	}
}

func TestModel_AcceptAllSkipsUnparseable(t *testing.T) {
	blocks := testBlocks()
	m := drive(t, NewModel(blocks), "A")

	statuses := m.Statuses()
	if statuses[blocks[0].ID] != diff.StatusAccepted || statuses[blocks[1].ID] != diff.StatusAccepted {
		t.Error("parseable blocks not accepted by A")
	}
	if statuses[blocks[2].ID] != diff.StatusRejected {
		t.Errorf("unparseable block = %v, want rejected by A", statuses[blocks[2].ID])
	}
}

func TestModel_AcceptIgnoredForUnparseable(t *testing.T) {
	blocks := testBlocks()
	m := drive(t, NewModel(blocks), "down", "down", "a")

	statuses := m.Statuses()
	if statuses[blocks[2].ID] != diff.StatusPending {
		t.Errorf("unparseable block = %v, want pending after a", statuses[blocks[2].ID])
	}
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	blocks := testBlocks()
	m := drive(t, NewModel(blocks), "up", "down", "down", "down", "down", "down")
	if m.cursor != len(blocks)-1 {
		t.Errorf("cursor = %d, want clamped to %d", m.cursor, len(blocks)-1)
	}
}

func TestModel_ViewListsBlocks(t *testing.T) {
	blocks := testBlocks()
	m := drive(t, NewModel(blocks), "a")

	view := m.View()
	if !strings.Contains(view, "daily.md") || !strings.Contains(view, "weekly.md") {
		t.Errorf("view missing file names:\n%s", view)
	}
	if !strings.Contains(view, "unparseable") {
		t.Errorf("view does not flag the unparseable block:\n%s", view)
	}
	if !strings.Contains(view, "accept") {
		t.Errorf("view missing status marker:\n%s", view)
	}
}

func TestModel_QuitClearsView(t *testing.T) {
	blocks := testBlocks()
	var model tea.Model = NewModel(blocks)
	model, cmd := model.Update(key("q"))
	if cmd == nil {
		t.Fatal("q did not produce a command, want tea.Quit")
	}
	if view := model.(Model).View(); view != "" {
		t.Errorf("view after quit = %q, want empty", view)
	}
}
