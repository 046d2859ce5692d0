// Package tui provides the interactive review screen for notemend.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notemend/notemend/internal/diff"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	previewAddStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	previewRemoveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	previewHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model is the bubbletea model for reviewing extracted diff blocks. It owns a
// copy of the blocks; the final statuses are read back after the program
// exits.
type Model struct {
	blocks   []diff.DiffBlock
	cursor   int
	preview  bool
	viewport viewport.Model
	ready    bool
	quitting bool
}

// NewModel creates a review model over the given blocks.
func NewModel(blocks []diff.DiffBlock) Model {
	owned := make([]diff.DiffBlock, len(blocks))
	copy(owned, blocks)
	return Model{blocks: owned}
}

// Statuses returns the decision per block ID as it stands.
func (m Model) Statuses() map[string]diff.BlockStatus {
	statuses := make(map[string]diff.BlockStatus, len(m.blocks))
	for _, b := range m.blocks {
		statuses[b.ID] = b.Status
	}
	return statuses
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the list header and help line.
		height := msg.Height - len(m.blocks) - 4
		if height < 5 {
			height = 5
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		if m.preview {
			m.viewport.SetContent(m.renderPreview())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshPreview()
			}

		case "down", "j":
			if m.cursor < len(m.blocks)-1 {
				m.cursor++
				m.refreshPreview()
			}

		case "a":
			if b := &m.blocks[m.cursor]; b.Parsed != nil {
				b.Status = diff.StatusAccepted
			}

		case "r":
			m.blocks[m.cursor].Status = diff.StatusRejected

		case "A":
			for i := range m.blocks {
				if m.blocks[i].Parsed != nil {
					m.blocks[i].Status = diff.StatusAccepted
				} else {
					m.blocks[i].Status = diff.StatusRejected
				}
			}

		case "enter":
			m.preview = !m.preview
			m.refreshPreview()

		default:
			if m.preview {
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}
	}
	return m, nil
}

func (m *Model) refreshPreview() {
	if m.preview && m.ready {
		m.viewport.SetContent(m.renderPreview())
		m.viewport.GotoTop()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Review proposed edits"))
	b.WriteString("\n\n")

	for i, block := range m.blocks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		var status string
		switch block.Status {
		case diff.StatusAccepted:
			status = acceptedStyle.Render("[accept]")
		case diff.StatusRejected:
			status = rejectedStyle.Render("[reject]")
		default:
			status = pendingStyle.Render("[  ?   ]")
		}

		name := block.FileName
		if block.Parsed == nil {
			name += " (unparseable)"
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, status, name)
	}

	if m.preview && m.ready {
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a accept · r reject · A accept all · enter preview · q done"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderPreview() string {
	block := m.blocks[m.cursor]
	var b strings.Builder
	for _, line := range strings.Split(block.RawDiff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			b.WriteString(previewHeaderStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(previewAddStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(previewRemoveStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Review runs the interactive review over blocks and returns the final
// status per block ID. Used as the runner's Decider with -interactive.
func Review(blocks []diff.DiffBlock) (map[string]diff.BlockStatus, error) {
	p := tea.NewProgram(NewModel(blocks))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(Model)
	return final.Statuses(), nil
}
