// Package tui implements the interactive architect configurator.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/stackarch/internal/ports/primary"
)

// loadedMsg carries a refreshed view of the slot.
type loadedMsg struct {
	view   *primary.ConfigurationView
	groups []*primary.CategoryOptions
	status string
	err    error
}

// Model is a bubbletea model that browses categories and applies one edit per
// key press. Every edit goes through the service, so the slot is saved as the
// user works.
type Model struct {
	ctx     context.Context
	service primary.ConfiguratorService
	slot    string

	view   *primary.ConfigurationView
	groups []*primary.CategoryOptions
	cat    int
	opt    int

	naming bool
	name   textinput.Model

	status string
	err    error
	quit   bool
}

// NewModel creates the architect model for a slot.
func NewModel(ctx context.Context, service primary.ConfiguratorService, slot string) Model {
	ti := textinput.New()
	ti.Placeholder = "my-app"
	ti.CharLimit = 255
	return Model{
		ctx:     ctx,
		service: service,
		slot:    slot,
		name:    ti,
	}
}

// Init loads the slot.
func (m Model) Init() tea.Cmd {
	return m.load("")
}

// Update handles key presses and service results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.groups = msg.groups
		m.status = msg.status
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.naming {
			return m.updateName(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.opt > 0 {
			m.opt--
		}
	case "down", "j":
		if g := m.group(); g != nil && m.opt < len(g.Options)-1 {
			m.opt++
		}
	case "left", "h", "shift+tab":
		if m.cat > 0 {
			m.cat--
			m.opt = 0
		}
	case "right", "l", "tab":
		if m.cat < len(m.groups)-1 {
			m.cat++
			m.opt = 0
		}
	case "enter", " ":
		if edit := m.selectionEdit(); edit != "" {
			return m, m.apply(edit)
		}
	case "n":
		m.naming = true
		if m.view != nil {
			m.name.SetValue(m.view.ProjectName)
		}
		m.name.Focus()
		return m, textinput.Blink
	case "r":
		return m, m.reset()
	}
	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quit = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.naming = false
		m.name.Blur()
		return m, nil
	case tea.KeyEnter:
		m.naming = false
		m.name.Blur()
		return m, m.apply("projectName=" + m.name.Value())
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// selectionEdit returns the edit for the option under the cursor, or "" when
// the option cannot be toggled.
func (m Model) selectionEdit() string {
	g := m.group()
	if g == nil || len(g.Options) == 0 {
		return ""
	}
	o := g.Options[m.opt]
	if g.Multi {
		if o.Selected {
			return fmt.Sprintf("%s-=%s", g.Category, o.OptionID)
		}
		if o.Disabled {
			return ""
		}
		return fmt.Sprintf("%s+=%s", g.Category, o.OptionID)
	}
	if o.Selected || o.Disabled {
		return ""
	}
	return fmt.Sprintf("%s=%s", g.Category, o.OptionID)
}

func (m Model) group() *primary.CategoryOptions {
	if m.cat < 0 || m.cat >= len(m.groups) {
		return nil
	}
	return m.groups[m.cat]
}

func (m *Model) clampCursor() {
	if m.cat >= len(m.groups) {
		m.cat = max(len(m.groups)-1, 0)
	}
	if g := m.group(); g != nil && m.opt >= len(g.Options) {
		m.opt = max(len(g.Options)-1, 0)
	}
}

func (m Model) load(status string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.service.Show(m.ctx, m.slot)
		if err != nil {
			return loadedMsg{err: err}
		}
		groups, err := m.service.ListOptions(m.ctx, m.slot, "")
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{view: view, groups: withNotes(groups, view), status: status}
	}
}

func (m Model) apply(edit string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.service.ApplyEdits(m.ctx, primary.ApplyEditsRequest{Slot: m.slot, Edits: []string{edit}})
		if err != nil {
			return loadedMsg{err: err}
		}
		return m.refresh(result, edit)
	}
}

func (m Model) reset() tea.Cmd {
	return func() tea.Msg {
		result, err := m.service.Reset(m.ctx, m.slot)
		if err != nil {
			return loadedMsg{err: err}
		}
		return m.refresh(result, "reset")
	}
}

func (m Model) refresh(result *primary.ApplyResult, action string) tea.Msg {
	groups, err := m.service.ListOptions(m.ctx, m.slot, "")
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{view: result.View, groups: withNotes(groups, result.View), status: describe(action, result)}
}

// withNotes carries the view's diagnostics onto the option groups. Options
// are listed against the saved, already corrected slot, so only the view of
// the action that made the corrections knows why a field changed.
func withNotes(groups []*primary.CategoryOptions, view *primary.ConfigurationView) []*primary.CategoryOptions {
	if view == nil {
		return groups
	}
	for _, g := range groups {
		if f := view.Field(g.Category); f != nil && len(f.Notes) > 0 {
			g.Notes = f.Notes
			g.HasIssue = f.HasIssue
		}
	}
	return groups
}

func describe(action string, result *primary.ApplyResult) string {
	if len(result.Rejected) > 0 {
		return fmt.Sprintf("%s skipped: %s", action, result.Rejected[0].Reason)
	}
	if len(result.Changes) == 0 {
		return action + ": no changes"
	}
	fields := make([]string, len(result.Changes))
	for i, ch := range result.Changes {
		fields[i] = ch.Field
	}
	return fmt.Sprintf("%s: changed %s", action, strings.Join(fields, ", "))
}

// View renders the configurator.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder
	if m.err != nil {
		fmt.Fprintf(&b, "error: %v\n\n", m.err)
	}
	if m.view == nil {
		b.WriteString("Loading...\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Stack Architect  slot %s\n", m.view.Slot)
	if m.naming {
		fmt.Fprintf(&b, "Project name: %s\n", m.name.View())
	} else {
		fmt.Fprintf(&b, "Project name: %s\n", m.view.ProjectName)
	}
	if m.view.NameError != "" {
		fmt.Fprintf(&b, "  ✗ %s\n", m.view.NameError)
	}
	b.WriteString("\n")

	tabs := make([]string, len(m.groups))
	for i, g := range m.groups {
		title := g.Title
		if g.HasIssue {
			title += "!"
		}
		if i == m.cat {
			title = "[" + title + "]"
		}
		tabs[i] = title
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if g := m.group(); g != nil {
		for i, o := range g.Options {
			cursor := "  "
			if i == m.opt {
				cursor = "> "
			}
			fmt.Fprintf(&b, "%s%s %s", cursor, mark(g.Multi, o), o.Name)
			if o.Disabled && !o.Selected {
				fmt.Fprintf(&b, "  (%s)", o.Reason)
			}
			b.WriteString("\n")
		}
		for _, n := range g.Notes {
			fmt.Fprintf(&b, "\n  ! %s", n)
		}
		if len(g.Notes) > 0 {
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n$ %s\n", m.view.Command)
	if m.status != "" {
		fmt.Fprintf(&b, "\n%s\n", m.status)
	}
	b.WriteString("\n←/→ category  ↑/↓ option  enter select  n name  r reset  q quit\n")
	return b.String()
}

func mark(multi bool, o *primary.OptionStatus) string {
	switch {
	case multi && o.Selected:
		return "[x]"
	case multi && o.Disabled:
		return "[-]"
	case multi:
		return "[ ]"
	case o.Selected:
		return "(•)"
	case o.Disabled:
		return "(-)"
	default:
		return "( )"
	}
}

// Run starts the configurator and blocks until the user quits.
func Run(ctx context.Context, service primary.ConfiguratorService, slot string) error {
	p := tea.NewProgram(NewModel(ctx, service, slot), tea.WithContext(ctx))
	result, err := p.Run()
	if err != nil {
		return err
	}
	if final, ok := result.(Model); ok && final.err != nil {
		return final.err
	}
	return nil
}
