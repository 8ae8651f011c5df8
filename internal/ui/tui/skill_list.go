package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/klauern/skillref/internal/model"
)

const (
	skillListNameWidth  = 24
	skillListStateWidth = 7
	skillListDescWidth  = 48
	skillListHeight     = 15
	skillListDetailMax  = 8
)

// skillListKeyMap defines the key bindings for the skill browser.
type skillListKeyMap struct {
	Detail   key.Binding
	Filter   key.Binding
	ClearFlt key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultSkillListKeyMap() skillListKeyMap {
	return skillListKeyMap{
		Detail: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type skillListPhase int

const (
	skillListPhaseList skillListPhase = iota
	skillListPhaseDetail
)

// SkillListModel is the BubbleTea model for browsing discovered skills.
type SkillListModel struct {
	table     table.Model
	skills    []model.SkillInfo
	filtered  []model.SkillInfo
	keys      skillListKeyMap
	phase     skillListPhase
	filter    string
	filtering bool
	width     int
	quitting  bool
}

// NewSkillListModel creates a skill browser over the given pipeline results,
// preserving their discovery order.
func NewSkillListModel(skills []model.SkillInfo) SkillListModel {
	m := SkillListModel{
		skills:   skills,
		filtered: skills,
		keys:     defaultSkillListKeyMap(),
	}

	t := table.New(
		table.WithColumns(skillListColumns()),
		table.WithRows(skillRows(skills)),
		table.WithFocused(true),
		table.WithHeight(skillListHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func skillListColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: skillListNameWidth},
		{Title: "Valid", Width: skillListStateWidth},
		{Title: "Description", Width: skillListDescWidth},
	}
}

func skillRows(skills []model.SkillInfo) []table.Row {
	rows := make([]table.Row, len(skills))
	for i, s := range skills {
		name := skillDisplayName(s)
		state := "yes"
		if !s.Valid {
			state = "no"
		}
		desc := ""
		if s.Properties != nil {
			desc = s.Properties.Description
		}
		rows[i] = table.Row{
			truncateCell(name, skillListNameWidth),
			state,
			truncateCell(desc, skillListDescWidth),
		}
	}
	return rows
}

func skillDisplayName(s model.SkillInfo) string {
	if s.Properties != nil && s.Properties.Name != "" {
		return s.Properties.Name
	}
	return s.Location.Dir
}

func truncateCell(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}

// Selected returns the currently highlighted skill, if any.
func (m SkillListModel) Selected() (model.SkillInfo, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.filtered) {
		return model.SkillInfo{}, false
	}
	return m.filtered[idx], true
}

// Init implements tea.Model.
func (m SkillListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SkillListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase == skillListPhaseDetail {
		return m.updateDetail(msg)
	}
	return m.updateList(msg)
}

func (m SkillListModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilterInput(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil
		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			if _, ok := m.Selected(); ok {
				m.phase = skillListPhaseDetail
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SkillListModel) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
	case "esc":
		m.filtering = false
		m.filter = ""
		m.applyFilter()
	case "backspace":
		if m.filter != "" {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
		}
	default:
		if len(msg.Runes) > 0 {
			m.filter += string(msg.Runes)
			m.applyFilter()
		}
	}
	return m, nil
}

func (m *SkillListModel) applyFilter() {
	if m.filter == "" {
		m.filtered = m.skills
	} else {
		needle := strings.ToLower(m.filter)
		filtered := make([]model.SkillInfo, 0, len(m.skills))
		for _, s := range m.skills {
			hay := strings.ToLower(skillDisplayName(s))
			if s.Properties != nil {
				hay += " " + strings.ToLower(s.Properties.Description)
			}
			if strings.Contains(hay, needle) {
				filtered = append(filtered, s)
			}
		}
		m.filtered = filtered
	}

	m.table.SetRows(skillRows(m.filtered))
	m.table.SetCursor(0)
}

func (m SkillListModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.phase = skillListPhaseList
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m SkillListModel) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == skillListPhaseDetail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render(fmt.Sprintf("Skills (%d)", len(m.filtered))))
	b.WriteString("\n")
	if m.filtering || m.filter != "" {
		b.WriteString(Styles.Filter.Render("filter: "+m.filter) + "\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(Styles.Help.Render("enter/v details • / filter • q quit"))
	return b.String()
}

func (m SkillListModel) detailView() string {
	skill, ok := m.Selected()
	if !ok {
		return Styles.Help.Render("nothing selected")
	}

	lines := []string{
		Styles.Title.Render(skillDisplayName(skill)),
		"Path: " + skill.Location.SkillFile,
	}

	if skill.Valid {
		lines = append(lines, Styles.Valid.Render("Valid skill"))
	} else {
		lines = append(lines, Styles.Bad.Render(fmt.Sprintf("%d violation(s):", len(skill.Violations))))
		shown := skill.Violations
		if len(shown) > skillListDetailMax {
			shown = shown[:skillListDetailMax]
		}
		for _, v := range shown {
			lines = append(lines, "  - "+v)
		}
	}

	if skill.Properties != nil && skill.Properties.Description != "" {
		lines = append(lines, "", skill.Properties.Description)
	}

	lines = append(lines, "", Styles.Help.Render("b/esc back • q quit"))
	return Styles.Detail.Render(strings.Join(lines, "\n"))
}
