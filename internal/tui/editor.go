package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adamavenir/rpcdeck/internal/core"
	"github.com/adamavenir/rpcdeck/internal/presence"
	"github.com/adamavenir/rpcdeck/internal/types"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSwitch
	fieldRadio
)

// formField binds one row of the form to the editor.
type formField struct {
	section     string
	label       string
	kind        fieldKind
	required    bool
	note        string
	placeholder string
	button      int
	get         func(types.PresenceConfig) string
	set         func(*presence.Editor, string) error
	enabled     func(*presence.Editor) bool
}

// SaveHandler persists a saved record. It runs synchronously inside Save;
// an error keeps the form dirty.
type SaveHandler = presence.SaveFunc

// EditorOptions configures NewEditorModel.
type EditorOptions struct {
	Title  string
	Strict bool
	Logger *zap.Logger
}

// EditorModel is the presence settings form.
type EditorModel struct {
	editor  *presence.Editor
	fields  []formField
	inputs  []textinput.Model
	focus   int
	title   string
	logger  *zap.Logger
	saves   int

	status    string
	statusErr bool
	width     int
	height    int
	closed    bool
}

// NewEditorModel opens the form on a copy of input.
func NewEditorModel(input types.PresenceConfig, save SaveHandler, opts EditorOptions) *EditorModel {
	logger := core.OrNop(opts.Logger)

	title := opts.Title
	if title == "" {
		title = "Edit RPC"
	}

	m := &EditorModel{
		editor: presence.NewEditor(input, save, presence.WithStrictValidation(opts.Strict)),
		title:  title,
		logger: logger,
	}
	m.rebuildFields()
	return m
}

// Editor exposes the underlying state for callers and tests.
func (m *EditorModel) Editor() *presence.Editor {
	return m.editor
}

// Saves returns how many saves succeeded.
func (m *EditorModel) Saves() int {
	return m.saves
}

// Closed reports whether the user closed the form.
func (m *EditorModel) Closed() bool {
	return m.closed
}

func (m *EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closed = true
		return m, tea.Quit
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "ctrl+s":
		m.save()
		return m, nil
	case "ctrl+r":
		m.reset()
		return m, nil
	case "ctrl+n":
		m.setResult(m.editor.AddButton(), "button added")
		m.rebuildFields()
		return m, nil
	case "ctrl+d":
		field := m.fields[m.focus]
		if field.button < 0 {
			m.setResult(errors.New("focus a button field to remove it"), "")
			return m, nil
		}
		m.setResult(m.editor.RemoveButton(field.button), fmt.Sprintf("button %d removed", field.button+1))
		m.rebuildFields()
		return m, nil
	}

	field := m.fields[m.focus]
	if field.enabled != nil && !field.enabled(m.editor) {
		return m, nil
	}

	switch field.kind {
	case fieldSwitch:
		if msg.String() == " " || msg.String() == "enter" {
			m.apply(field, strconv.FormatBool(field.get(m.editor.Working()) != "true"))
		}
		return m, nil
	case fieldRadio:
		switch msg.String() {
		case "left", "h":
			m.apply(field, stepActivity(m.editor.Working().Type, -1))
		case "right", "l":
			m.apply(field, stepActivity(m.editor.Working().Type, 1))
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if value := m.inputs[m.focus].Value(); value != before {
		m.apply(field, value)
	}
	return m, cmd
}

func (m *EditorModel) apply(field formField, value string) {
	if err := field.set(m.editor, value); err != nil {
		m.setResult(err, "")
		m.syncInputs()
		return
	}
	m.status = ""
	m.statusErr = false
}

func (m *EditorModel) save() {
	if !m.editor.IsDirty() {
		return
	}
	if err := m.editor.Save(); err != nil {
		var invalid *presence.ValidationFailed
		if errors.As(err, &invalid) {
			m.logger.Debug("save rejected", zap.Error(err))
		} else {
			m.logger.Error("persist presence", zap.Error(err))
		}
		m.setResult(err, "")
		return
	}
	m.saves++
	m.logger.Info("presence saved", zap.String("name", m.editor.Working().Name))
	m.setResult(nil, "saved")
}

func (m *EditorModel) reset() {
	if !m.editor.IsDirty() {
		return
	}
	m.editor.Reset()
	m.rebuildFields()
	m.setResult(nil, "changes discarded")
}

func (m *EditorModel) setResult(err error, ok string) {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = ok
	m.statusErr = false
}

func (m *EditorModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	if m.fields[m.focus].kind == fieldText {
		m.inputs[m.focus].Focus()
		m.inputs[m.focus].CursorEnd()
	}
}

// rebuildFields regenerates the rows after the button list changes shape.
func (m *EditorModel) rebuildFields() {
	m.fields = buildFields(len(m.editor.Working().Buttons))
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, field := range m.fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 256
		input.Placeholder = field.placeholder
		m.inputs[i] = input
	}
	if m.focus >= len(m.fields) {
		m.focus = len(m.fields) - 1
	}
	m.syncInputs()
	if m.fields[m.focus].kind == fieldText {
		m.inputs[m.focus].Focus()
		m.inputs[m.focus].CursorEnd()
	}
}

func (m *EditorModel) syncInputs() {
	working := m.editor.Working()
	for i, field := range m.fields {
		if field.kind == fieldText {
			m.inputs[i].SetValue(field.get(working))
		}
	}
}

func (m *EditorModel) View() string {
	if m.closed {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	section := ""
	for i, field := range m.fields {
		if field.section != section {
			section = field.section
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render(section))
			b.WriteString("\n")
		}
		b.WriteString(m.renderField(i, field))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editor.IsDirty() {
		b.WriteString(dirtyStyle.Render("Careful, you have unsaved changes!"))
		b.WriteString("  ")
		b.WriteString(helpStyle.Render("ctrl+s save  ctrl+r reset"))
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab/↑↓ move  space toggle  ←→ choose  ctrl+n add button  ctrl+d remove button  esc close"))

	box := boxStyle
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	return box.Render(b.String())
}

func (m *EditorModel) renderField(i int, field formField) string {
	focused := i == m.focus
	enabled := field.enabled == nil || field.enabled(m.editor)

	var label string
	labelCell := lipgloss.NewStyle().Width(22)
	switch {
	case !enabled:
		label = disabledStyle.Render(field.label)
	case focused:
		label = focusStyle.Render(field.label)
		if field.required {
			label += requiredStyle.Render("*")
		}
	default:
		label = labelStyle.Render(field.label)
		if field.required {
			label += requiredStyle.Render("*")
		}
	}

	var value string
	working := m.editor.Working()
	switch field.kind {
	case fieldSwitch:
		value = renderSwitch(field.get(working) == "true", focused)
	case fieldRadio:
		value = renderActivityRadio(working.Type, focused)
	default:
		if enabled {
			value = m.inputs[i].View()
		} else {
			value = disabledStyle.Render(orPlaceholder(field.get(working), field.placeholder))
		}
	}

	line := labelCell.Render(label) + " " + value
	if field.note != "" && focused {
		line += "\n" + strings.Repeat(" ", 23) + noteStyle.Render(field.note)
	}
	return line
}

func renderSwitch(on, focused bool) string {
	text := "○ off"
	if on {
		text = "● on"
	}
	if focused {
		return focusStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func renderActivityRadio(selected types.ActivityType, focused bool) string {
	parts := make([]string, 0, len(types.ActivityTypes()))
	for _, a := range types.ActivityTypes() {
		if a == selected {
			style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
			if focused {
				style = focusStyle
			}
			parts = append(parts, style.Render("● "+a.String()))
			continue
		}
		parts = append(parts, noteStyle.Render("○ "+a.String()))
	}
	return strings.Join(parts, "  ")
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func stepActivity(current types.ActivityType, delta int) string {
	all := types.ActivityTypes()
	idx := 0
	for i, a := range all {
		if a == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(all)) % len(all)
	return strconv.Itoa(int(all[idx]))
}
