package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zgrigoryan/shared-pointer/ptr"
	"github.com/zgrigoryan/shared-pointer/track"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	handleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// demoHandle is one handle row in the inspector. Several rows may share a
// registry id when they share a resource.
type demoHandle struct {
	name string
	id   track.ID
	ref  ptr.Ref[int]
}

type interactiveModel struct {
	reg      *track.Registry
	handles  []*demoHandle
	events   []string
	input    textinput.Model
	err      error
	next     int
	selected int
	state    modelState
}

type modelState int

const (
	stateList modelState = iota
	stateInputValue
	stateInputReset
)

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "integer value"
	ti.Prompt = "value: "
	ti.Width = 20

	m := &interactiveModel{
		reg:   track.NewRegistry(),
		input: ti,
		next:  1,
	}
	m.reg.Subscribe(m)
	return m
}

// OnHandleEvent implements track.Observer; events scroll in the footer.
func (m *interactiveModel) OnHandleEvent(e track.Event) {
	line := fmt.Sprintf("%s %s (id %d, refs %d)", e.Type, e.Label, e.ID, e.Refs)
	m.events = append(m.events, line)
	if len(m.events) > 5 {
		m.events = m.events[len(m.events)-5:]
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m *interactiveModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch msg.String() {
	case "ctrl+c", "q":
		for _, h := range m.handles {
			track.Release(m.reg, h.id, &h.ref)
		}
		m.reg.Close()
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.handles)-1 {
			m.selected++
		}

	case "n":
		m.state = stateInputValue
		m.input.SetValue("")
		m.input.Focus()

	case "c":
		if h := m.current(); h != nil {
			if !h.ref.Valid() {
				m.err = fmt.Errorf("cannot clone an empty handle")
				break
			}
			clone := track.Share(m.reg, h.id, &h.ref)
			m.handles = append(m.handles, &demoHandle{
				name: h.name + "'",
				id:   h.id,
				ref:  clone,
			})
		}

	case "m":
		if h := m.current(); h != nil {
			if !h.ref.Valid() {
				m.err = fmt.Errorf("cannot move an empty handle")
				break
			}
			m.handles = append(m.handles, &demoHandle{
				name: h.name + ">",
				id:   h.id,
				ref:  h.ref.Move(),
			})
		}

	case "d":
		if h := m.current(); h != nil {
			track.Release(m.reg, h.id, &h.ref)
			m.handles = append(m.handles[:m.selected], m.handles[m.selected+1:]...)
			if m.selected >= len(m.handles) && m.selected > 0 {
				m.selected--
			}
		}

	case "r":
		if h := m.current(); h != nil {
			m.state = stateInputReset
			m.input.SetValue("")
			m.input.Focus()
		}
	}

	return m, nil
}

func (m *interactiveModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.state = stateList
		m.input.Blur()
		return m, nil

	case "enter":
		v, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil {
			m.err = fmt.Errorf("not an integer: %q", m.input.Value())
			m.state = stateList
			m.input.Blur()
			return m, nil
		}

		switch m.state {
		case stateInputValue:
			m.adopt(v)
		case stateInputReset:
			m.reset(v)
		}
		m.state = stateList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) adopt(v int) {
	name := fmt.Sprintf("h%d", m.next)
	m.next++

	ref, id, err := track.Adopt(m.reg, name, &v)
	if err != nil {
		m.err = err
		return
	}
	m.handles = append(m.handles, &demoHandle{name: name, id: id, ref: ref})
	m.selected = len(m.handles) - 1
}

// reset replaces the selected handle's resource: the old reference is
// released through the registry and the new value adopted under the same
// name, which keeps the inspector's view and the registry in sync.
func (m *interactiveModel) reset(v int) {
	h := m.current()
	if h == nil {
		return
	}

	track.Release(m.reg, h.id, &h.ref)
	ref, id, err := track.Adopt(m.reg, h.name, &v)
	if err != nil {
		m.err = err
		return
	}
	h.ref = ref
	h.id = id
}

func (m *interactiveModel) current() *demoHandle {
	if m.selected < 0 || m.selected >= len(m.handles) {
		return nil
	}
	return m.handles[m.selected]
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Shared Handle Inspector"))
	b.WriteString(fmt.Sprintf("  %d live resource(s)\n\n", m.reg.Len()))

	if len(m.handles) == 0 {
		b.WriteString(emptyStyle.Render("no handles; press n to adopt a value"))
		b.WriteString("\n")
	}

	for i, h := range m.handles {
		line := m.formatHandle(h)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.state == stateInputValue || m.state == stateInputReset {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.events) > 0 {
		b.WriteString("\n")
		for _, e := range m.events {
			b.WriteString(eventStyle.Render("• " + e))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • n new • c clone • m move • d release • r reset • q quit"))
	return b.String()
}

func (m *interactiveModel) formatHandle(h *demoHandle) string {
	if !h.ref.Valid() {
		return handleStyle.Render(h.name) + " " + emptyStyle.Render("(empty)")
	}
	return fmt.Sprintf("%s = %d %s",
		handleStyle.Render(h.name),
		h.ref.Value(),
		countStyle.Render(fmt.Sprintf("(use count %d)", h.ref.UseCount())),
	)
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
