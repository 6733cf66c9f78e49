package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mcbanners/banners/pkg/backend"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// TypePickerModel is the bubbletea model for interactive banner type selection.
type TypePickerModel struct {
	Types    []backend.BannerType
	Cursor   int
	Selected backend.BannerType
	Height   int
	Offset   int
}

// NewTypePickerModel creates a picker over types.
func NewTypePickerModel(types []backend.BannerType) TypePickerModel {
	return TypePickerModel{Types: types, Height: 12}
}

func (m TypePickerModel) Init() tea.Cmd {
	return nil
}

func (m TypePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Types)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Types) == 0 {
				return m, tea.Quit
			}
			t := m.Types[m.Cursor]
			// Discord banners cannot be rendered yet.
			if t.Category() == backend.CategoryDiscordUser {
				return m, nil
			}
			m.Selected = t
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m TypePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Banner Type"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Types))
	for i := m.Offset; i < end; i++ {
		t := m.Types[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-22s %s", cursor, strings.ToLower(string(t)), listDimStyle.Render(typeKeys(t)))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case t.Category() == backend.CategoryDiscordUser:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Types))))
	return b.String()
}

// typesTable renders every banner type with its category, backend and keys.
func typesTable(types []backend.BannerType) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(types))
	for _, t := range types {
		name := "—"
		if b, ok := t.Backend(); ok {
			name = b.DisplayName()
		}
		rows = append(rows, []string{strings.ToLower(string(t)), t.Category().String(), name, typeKeys(t)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Category", "Backend", "Keys").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

func typeKeys(t backend.BannerType) string {
	keys := t.RequiredKeys()
	if t == backend.MinecraftServer {
		keys = append(keys, backend.KeyServerPort+"?")
	}
	if len(keys) == 0 {
		return "not implemented"
	}
	return strings.Join(keys, " ")
}
