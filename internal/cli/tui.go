package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neurokit/morph/pkg/morph"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// somaCandidate is one row of the interactive soma picker.
type somaCandidate struct {
	Node       *morph.Node
	ChildCount int
}

// somaPickerModel is the bubbletea model for interactively choosing a
// soma when the degree heuristic ties between several candidates.
type somaPickerModel struct {
	Candidates []somaCandidate
	Cursor     int
	Selected   *somaCandidate
}

func newSomaPickerModel(candidates []somaCandidate) somaPickerModel {
	return somaPickerModel{Candidates: candidates}
}

func (m somaPickerModel) Init() tea.Cmd { return nil }

func (m somaPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Candidates[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m somaPickerModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select Soma Node"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, c := range m.Candidates {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("node %d  type %d  %d children  (%.1f, %.1f, %.1f)",
			c.Node.ID, c.Node.Type, c.ChildCount, c.Node.X, c.Node.Y, c.Node.Z)
		b.WriteString(cursor + style.Render(line) + "\n")
	}
	return b.String()
}

// pickSoma runs the interactive picker and returns the chosen node ID,
// or 0 when the user backed out.
func pickSoma(candidates []somaCandidate) (int, error) {
	p := tea.NewProgram(newSomaPickerModel(candidates))
	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	m, ok := final.(somaPickerModel)
	if !ok || m.Selected == nil {
		return 0, nil
	}
	return m.Selected.Node.ID, nil
}
